//go:build linux || darwin

package main

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nczempin/nbtcp/address"
	"github.com/nczempin/nbtcp/transport"
)

type probeOptions struct {
	payload   string
	timeout   time.Duration
	bufSize   int
	verbose   bool
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newRootCmd() *cobra.Command {
	opts := &probeOptions{newLogger: newLogger}

	root := &cobra.Command{
		Use:           "nbprobe",
		Short:         "Probe TCP endpoints with a non-blocking client socket",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log socket lifecycle events")

	connect := &cobra.Command{
		Use:   "connect HOST:PORT",
		Short: "Connect, optionally send a payload, and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(cmd, opts, args[0])
		},
	}
	connect.Flags().StringVarP(&opts.payload, "send", "s", "", "payload to send after connecting")
	connect.Flags().DurationVarP(&opts.timeout, "timeout", "t", 5*time.Second, "overall deadline")
	connect.Flags().IntVar(&opts.bufSize, "buffer", 4096, "receive buffer size")

	root.AddCommand(connect)
	return root
}

func runConnect(cmd *cobra.Command, opts *probeOptions, target string) error {
	ap, err := netip.ParseAddrPort(target)
	if err != nil {
		return errors.Wrapf(err, "invalid endpoint %q", target)
	}
	if opts.bufSize <= 0 {
		return errors.Errorf("invalid buffer size %d", opts.bufSize)
	}

	log, err := opts.newLogger(opts.verbose)
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	t := transport.NewTcpTransport(transport.WithLogger(log))
	defer t.Close()

	if err := t.Connect(ctx, address.FromAddrPort(ap)); err != nil {
		return errors.Wrapf(err, "connect %s", target)
	}

	local, err := t.Socket().LocalAddress()
	if err != nil {
		return err
	}
	remote, err := t.Socket().RemoteAddress()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "connected %s -> %s\n", local, remote)

	if opts.payload == "" {
		return nil
	}

	n, err := t.Write(ctx, []byte(opts.payload))
	if err != nil {
		return errors.Wrap(err, "send")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent %d bytes\n", n)

	buf := make([]byte, opts.bufSize)
	n, err = t.Read(ctx, buf)
	if err != nil {
		return errors.Wrap(err, "receive")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "received %d bytes: %q\n", n, buf[:n])
	return nil
}
