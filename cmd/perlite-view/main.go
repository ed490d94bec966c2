package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/l4go/task"

	"github.com/cypnk/perlite/view"
)

func warn(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
}

func die(format string, v ...interface{}) {
	warn(format, v...)
	os.Exit(1)
}

var DumpMode bool
var ConfigFile string

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [options] [request path]\n",
			os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&DumpMode, "d", false, "dump rendered page to stdout")
	flag.StringVar(&ConfigFile, "c", "perlite-view.conf", "config file")
	flag.Parse()

	if DumpMode && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
}

func main() {
	cfg, cerr := view.NewViewConfig(ConfigFile)
	if cerr != nil {
		die("Config error: %s: %v", ConfigFile, cerr)
	}

	v, verr := view.NewView(cfg)
	if verr != nil {
		die("View setup error: %v", verr)
	}

	if DumpMode {
		v.Dump(os.Stdout, os.Stderr, flag.Arg(0))
		return
	}

	cc := task.NewCancel()
	defer cc.Cancel()

	sig_ch := make(chan os.Signal, 1)
	signal.Notify(sig_ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sig_ch:
			cc.Cancel()
		case <-cc.RecvCancel():
		}
	}()

	if serr := v.ListenAndServe(cc); serr != nil {
		die("Server error: %v", serr)
	}
}
