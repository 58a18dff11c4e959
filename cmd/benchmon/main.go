// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Benchmon polls measurements from every instrument on a bench and exposes
// them as Prometheus gauges, optionally mirroring each sample to an MQTT
// broker as JSON for dashboards that live off the scrape path.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/bench"
)

var readings = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "bench",
		Name:      "reading",
		Help:      "Latest measurement from a bench instrument.",
	},
	[]string{"device", "quantity"},
)

var readErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bench",
		Name:      "read_errors_total",
		Help:      "Failed measurement attempts per bench instrument.",
	},
	[]string{"device"},
)

type sample struct {
	Device   string  `json:"device"`
	Quantity string  `json:"quantity"`
	Value    float64 `json:"value"`
	Time     int64   `json:"time"`
}

func main() {
	configFile := flag.String("config", "bench.yaml", "bench configuration file")
	listen := flag.String("listen", ":9402", "metrics listen address")
	interval := flag.Duration("interval", 5*time.Second, "polling interval")
	broker := flag.String("mqtt", "", "MQTT broker URI, e.g. tcp://localhost:1883 (optional)")
	topic := flag.String("topic", "bench/readings", "MQTT topic for JSON samples")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := bench.Load(*configFile)
	if err != nil {
		log.Fatalf("loading bench config: %v", err)
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Mask(args...)
	}
	b, err := bench.Connect(cfg)
	if err != nil {
		log.Fatalf("connecting bench: %v", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Errorf("closing bench: %v", err)
		}
	}()
	log.Infof("connected %d devices", len(b.Names()))

	var client mqtt.Client
	if *broker != "" {
		opts := mqtt.NewClientOptions().
			AddBroker(*broker).
			SetClientID("benchmon").
			SetAutoReconnect(true)
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Fatalf("connecting MQTT broker: %v", token.Error())
		}
		defer client.Disconnect(250)
		log.Infof("publishing samples to %s on %s", *topic, *broker)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(readings, readErrors)
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		log.Infof("serving metrics on %s", *listen)
		if err := http.ListenAndServe(*listen, nil); err != nil {
			log.Fatalf("metrics server: %v", err)
		}
	}()

	publish := func(s sample) {
		readings.WithLabelValues(s.Device, s.Quantity).Set(s.Value)
		if client == nil {
			return
		}
		payload, err := json.Marshal(s)
		if err != nil {
			log.Errorf("encoding sample: %v", err)
			return
		}
		client.Publish(*topic, 0, false, payload)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			log.Info("shutting down")
			return
		case <-ticker.C:
			poll(log, b, publish)
		}
	}
}

// poll takes one round of measurements across the bench. Each device is
// measured through the capability interfaces it implements, so new drivers
// show up here without any changes.
func poll(log *logrus.Logger, b *bench.Bench, publish func(sample)) {
	now := time.Now().Unix()
	for _, name := range b.Names() {
		dev, _ := b.Device(name)
		measured := false

		type quantity struct {
			label   string
			measure func() (float64, error)
		}
		var quantities []quantity
		switch d := dev.(type) {
		case equipment.VoltageSource:
			quantities = []quantity{
				{"voltage", d.MeasureVoltage},
				{"current", d.MeasureCurrent},
			}
		case equipment.CurrentSink:
			quantities = []quantity{
				{"voltage", d.MeasureVoltage},
				{"current", d.MeasureCurrent},
			}
		case equipment.TemperatureController:
			quantities = []quantity{
				{"temperature", d.MeasureTemperature},
			}
		}
		for _, q := range quantities {
			v, err := q.measure()
			if err != nil {
				log.Warnf("%s: measuring %s: %v", name, q.label, err)
				readErrors.WithLabelValues(name).Inc()
				continue
			}
			publish(sample{Device: name, Quantity: q.label, Value: v, Time: now})
			measured = true
		}
		if measured {
			log.Debugf("%s: polled", name)
		}
	}
}
