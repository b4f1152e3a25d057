// Command assoofs mounts or formats an assoofs image. Grounded on the
// teacher's cmd/sqfs tool, rebuilt around github.com/spf13/cobra the way
// the retrieval pack's gcsfuse builds its own cmd/ tree.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KarpelesLab/assoofs/format"
	"github.com/KarpelesLab/assoofs/fusefs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assoofs",
		Short: "assoofs mounts and formats small block-addressed filesystem images",
	}
	root.AddCommand(newFormatCmd())
	root.AddCommand(newMountCmd())
	return root
}

func newFormatCmd() *cobra.Command {
	var welcome string

	cmd := &cobra.Command{
		Use:   "format <device>",
		Short: "write a fresh assoofs image to a file or block device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.OpenFile(args[0], os.O_RDWR|os.O_CREATE, 0644)
			if err != nil {
				return err
			}
			defer f.Close()

			w := format.NewWriter(format.WithWelcomeFile(welcome))
			return w.Finalize(f)
		},
	}

	cmd.Flags().StringVar(&welcome, "welcome", "README.txt", "name of the welcome file to seed the image with (empty disables it)")
	return cmd
}

func newMountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <device> <mountpoint>",
		Short: "mount an assoofs image through FUSE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := os.OpenFile(args[0], os.O_RDWR, 0644)
			if err != nil {
				return err
			}
			defer dev.Close()

			m, err := fusefs.Mount(args[1], dev)
			if err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sig
				m.Unmount()
			}()

			m.Wait()
			return nil
		},
	}
	return cmd
}
