package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/irdc/gohdl/pkg/hdl"
	"github.com/irdc/gohdl/pkg/sim"
	"github.com/irdc/gohdl/pkg/vtime"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hdlsim",
		Short: "hdlsim — event-driven simulator for four-valued digital logic",
	}

	// run command
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run [part]",
		Short: "Instantiate a registered part and simulate it to quiescence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := hdl.Lookup(args[0])
			if err != nil {
				return err
			}

			s := sim.New(typ.New())
			if verbose {
				l := logrus.New()
				l.SetLevel(logrus.DebugLevel)
				s.SetLogger(l)
			}
			if err := s.Run(); err != nil {
				return err
			}
			fmt.Printf("%s: quiescent at %s\n", typ.Name(), s.Now().Time)
			return nil
		},
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Trace scheduler activity")

	// list command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered parts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range hdl.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	// time command
	timeCmd := &cobra.Command{
		Use:   "time [literal]",
		Short: "Parse a timestamp literal and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := vtime.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Println(t)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, timeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
