package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/ws2812spi/internal/neopixel"
	"github.com/callebjorkell/ws2812spi/internal/platform"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("ws2812", "Drive a strip of WS2812 LEDs over SPI")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Configuration file.").Short('c').Default("config.yaml").String()
	leds       = app.Flag("leds", "Number of LEDs, overrides the configuration.").Int()
	brightness = app.Flag("brightness", "Brightness in percent, overrides the configuration.").Default("-1").Int()
	port       = app.Flag("port", "SPI port, overrides the configuration.").String()

	clearCmd = app.Command("clear", "Turn all LEDs off.")

	fillCmd   = app.Command("fill", "Light all LEDs in one color until interrupted.")
	fillColor = fillCmd.Arg("color", "Configured color name or hex RGB.").Required().String()

	flashCmd   = app.Command("flash", "Flash all LEDs three times.")
	flashColor = flashCmd.Arg("color", "Configured color name or hex RGB.").Required().String()

	breatheCmd   = app.Command("breathe", "Fade all LEDs in and out until interrupted.")
	breatheColor = breatheCmd.Arg("color", "Configured color name or hex RGB.").Required().String()

	wipeCmd   = app.Command("wipe", "Light the LEDs one after the other.")
	wipeColor = wipeCmd.Arg("color", "Configured color name or hex RGB.").Required().String()
	wipeDelay = wipeCmd.Flag("delay", "Delay between two LEDs.").Default("50ms").Duration()

	fadeCmd   = app.Command("fade", "Fade all LEDs in to a brightness and keep them lit until interrupted.")
	fadeColor = fadeCmd.Arg("color", "Configured color name or hex RGB.").Required().String()
	fadeTo    = fadeCmd.Flag("to", "Brightness in percent to end at, the configured brightness if unset.").Default("-1").Int()
	fadeStep  = fadeCmd.Flag("step", "Time spent on every percent.").Default("20ms").Duration()

	version = app.Command("version", "Show current version.")
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	if cmd == version.FullCommand() {
		showVersion()
		return
	}

	conf, err := readConfig(*configFile)
	if err != nil {
		log.Fatal("Unable to read configuration: ", err)
	}
	overrides := flagOverrides{leds: *leds, brightness: *brightness, port: *port}
	if err := overrides.apply(conf); err != nil {
		log.Fatal(err)
	}

	led, err := openController(conf)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := led.Close(); err != nil {
			log.Warn("Unable to close the LEDs: ", err)
		}
	}()

	if err := run(cmd, conf, led); err != nil {
		log.Error(err)
	}
	log.Info("Done...")
}

// flagOverrides are the command line flags that take precedence over the
// configuration file. Zero LEDs, a negative brightness and an empty port
// leave the configuration as it is.
type flagOverrides struct {
	leds       int
	brightness int
	port       string
}

func (f flagOverrides) apply(conf *Config) error {
	if f.leds < 0 {
		return fmt.Errorf("number of LEDs must be positive, got %d", f.leds)
	}
	if f.leds > 0 {
		conf.Leds = f.leds
	}
	if f.brightness >= 0 {
		b, err := percent(f.brightness)
		if err != nil {
			return err
		}
		conf.Brightness = &b
	}
	if f.port != "" {
		conf.SPI.Port = f.port
	}
	return nil
}

func percent(v int) (uint8, error) {
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("brightness must be between 0 and 100, got %d", v)
	}
	return uint8(v), nil
}

func openController(conf *Config) (*neopixel.LedController, error) {
	pc, err := conf.Platform()
	if err != nil {
		return nil, fmt.Errorf("invalid platform configuration: %w", err)
	}
	dev, err := platform.Open(pc, conf.Leds, *conf.Brightness)
	if err != nil {
		return nil, fmt.Errorf("unable to open the LEDs: %w", err)
	}
	return neopixel.NewLedController(dev), nil
}

func run(cmd string, conf *Config, led *neopixel.LedController) error {
	switch cmd {
	case clearCmd.FullCommand():
		return led.Clear()
	case fillCmd.FullCommand():
		color, err := conf.Color(*fillColor)
		if err != nil {
			return err
		}
		if err := led.Fill(color); err != nil {
			return err
		}
		waitForSignal()
	case flashCmd.FullCommand():
		color, err := conf.Color(*flashColor)
		if err != nil {
			return err
		}
		return led.Flash(color)
	case breatheCmd.FullCommand():
		color, err := conf.Color(*breatheColor)
		if err != nil {
			return err
		}
		led.Breathe(color)
		waitForSignal()
		led.Stop()
	case fadeCmd.FullCommand():
		color, err := conf.Color(*fadeColor)
		if err != nil {
			return err
		}
		to := *conf.Brightness
		if *fadeTo >= 0 {
			if to, err = percent(*fadeTo); err != nil {
				return err
			}
		}
		if err := led.Fade(color, to, *fadeStep); err != nil {
			return err
		}
		waitForSignal()
	case wipeCmd.FullCommand():
		color, err := conf.Color(*wipeColor)
		if err != nil {
			return err
		}
		return led.Wipe(color, *wipeDelay)
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
	return nil
}

func waitForSignal() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	log.Info("Running until interrupted...")
	<-signalChan
}
