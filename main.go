package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/stream"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(client); err != nil {
		log.Printf("Subscribe failed: %v", err)
	}
}

func (a *app) readConfig(configPath string) {
	config, err := stream.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) loadLibrary() {
	if a.Config.Library == "" {
		return
	}
	if err := a.Streamer.LoadLibrary(a.Config.Library); err != nil {
		// A partly broken library still leaves the good animations usable.
		log.Printf("Library: %v", err)
	}
}

func (a *app) watchLibrary() *stream.Watcher {
	if !a.Config.Watch || a.Config.Library == "" {
		return nil
	}
	w, err := stream.NewWatcher(filepath.Dir(a.Config.Library))
	if err != nil {
		log.Printf("Not watching %s: %v", a.Config.Library, err)
		return nil
	}
	go a.Streamer.Watch(w)
	return w
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	if err := a.Streamer.Run(ctx); err != nil && err != context.Canceled {
		log.Println(err)
	}
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	streamer, err := stream.NewStreamer(a.Config, stream.NewMqttPublisher(a.Client))
	if err != nil {
		panic(err)
	}
	a.Streamer = streamer

	a.loadLibrary()
	if err := a.Streamer.Start(a.Config.Start); err != nil {
		log.Printf("Start: %v", err)
	}

	if w := a.watchLibrary(); w != nil {
		defer w.Close()
	}

	go func() {
		if err := api.NewApi(a.Streamer).Serve(a.Config.HTTP.Addr); err != nil {
			log.Printf("API stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
}
