// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Benchident connects to every instrument in a bench configuration and
// prints its *IDN? response, which makes a quick sanity check that the
// bench is cabled and addressed as configured.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/benchrig/equipment/bench"
)

func main() {
	configFile := flag.String("config", "bench.yaml", "bench configuration file")
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
	if len(cfg.Devices) == 0 {
		log.Fatal("no devices configured")
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

	names := b.Names()
	sort.Strings(names)
	failed := false
	for _, name := range names {
		res, _ := b.Resource(name)
		idn, err := res.IDN()
		if err != nil {
			log.Errorf("%s: %v", name, err)
			failed = true
			continue
		}
		fmt.Printf("%-20s %s\n", name, idn)
	}
	if failed {
		os.Exit(1)
	}
}
