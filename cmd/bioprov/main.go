package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nathanhaigh/cloudbiolinux/pkg/conn"
	"github.com/nathanhaigh/cloudbiolinux/pkg/distro"
	"github.com/nathanhaigh/cloudbiolinux/pkg/env"
	"github.com/nathanhaigh/cloudbiolinux/pkg/inventory"
	"github.com/nathanhaigh/cloudbiolinux/pkg/sources"
	"github.com/nathanhaigh/cloudbiolinux/pkg/version"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "--help" || os.Args[1] == "-h" {
		printUsage()
		os.Exit(0)
	}
	switch os.Args[1] {
	case "help":
		if len(os.Args) > 2 && os.Args[2] == "setup" {
			usageSetup()
		} else {
			printUsage()
		}
	case "version":
		fmt.Printf("bioprov %s\n", version.Version)
	case "setup":
		runSetup(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func runSetup(args []string) {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	targetFile := fs.String("target", "", "target config file (yaml)")
	timeout := fs.Duration("timeout", 15*time.Second, "ssh dial timeout")
	writeSources := fs.Bool("write-sources", false, "append the assembled source lines on the target")
	verbose := fs.Bool("v", false, "debug logging")
	_ = fs.Parse(args)
	if *targetFile == "" {
		fmt.Fprintln(os.Stderr, "setup requires -target")
		usageSetup()
		os.Exit(2)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	e, err := inventory.LoadTarget(*targetFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx := context.Background()
	c, err := distro.Setup(ctx, e, dialEnv(*timeout))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Close()
	if *writeSources {
		if err := sources.Write(ctx, e); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	host := ""
	if len(e.Hosts) > 0 {
		host = e.Hosts[0]
	}
	fmt.Printf("%s | %s | sources=%d sudo=%v 64bit=%v\n",
		host, e.Distribution, len(e.StdSources), e.UseSudo, e.Is64Bit)
}

func dialEnv(timeout time.Duration) distro.DialFunc {
	return func(e *env.Env) (conn.Conn, error) {
		if len(e.Hosts) == 0 {
			return nil, fmt.Errorf("no hosts in target")
		}
		keyPath := e.KeyFile
		if keyPath == "" {
			keyPath = filepath.Join(os.Getenv("HOME"), ".ssh", "id_rsa")
		}
		key, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, err
		}
		user := e.User
		if user == "" {
			user = os.Getenv("USER")
		}
		return conn.Dial(user, e.Hosts[0], e.Port, key, timeout)
	}
}

func printUsage() {
	fmt.Println(`bioprov - prepare a server environment for provisioning

Usage:
  bioprov setup -target <file> [-timeout 15s] [-write-sources] [-v]
  bioprov version
  bioprov help [setup]`)
}

func usageSetup() {
	fmt.Println(`bioprov setup -target <file>

Loads the target config, resolves connection identity (vagrant/localhost
sentinels supported), applies the distribution profile, validates the live
machine, selects the sudo policy and probes the architecture. With
-write-sources the assembled package source lines are appended to the
sources file on the target.`)
}
