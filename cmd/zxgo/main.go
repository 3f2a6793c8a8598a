package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eng2007/zxgo/internal/config"
	"github.com/eng2007/zxgo/internal/display"
	"github.com/eng2007/zxgo/internal/machine"
	"github.com/eng2007/zxgo/internal/snapshot"
	"github.com/eng2007/zxgo/internal/trd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zxgo",
		Short: "ZX Spectrum 48K/128K/Pentagon 512K emulator with TR-DOS support",
	}

	var configPath string
	var romPath string
	var trdosROMPath string
	var snapshotPath string
	var diskPath string
	var scale int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the emulator, optionally loading a snapshot and/or disk image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			m := machine.New(cfg, log.New(os.Stderr, "fdc: ", 0))

			if romPath != "" {
				if err := snapshot.LoadROM(romPath, m.Memory); err != nil {
					return err
				}
			}
			if trdosROMPath != "" {
				if err := snapshot.LoadTRDOSROM(trdosROMPath, m.Memory); err != nil {
					return err
				}
			}
			if diskPath != "" {
				disk, err := trd.Load(diskPath)
				if err != nil {
					return err
				}
				m.FDC.LoadDisk(disk)
			}
			if snapshotPath != "" {
				if err := loadSnapshot(snapshotPath, m); err != nil {
					return err
				}
			}

			renderer, err := display.NewRenderer(int32(scale))
			if err != nil {
				return fmt.Errorf("zxgo: SDL init failed: %w", err)
			}
			defer renderer.Close()

			frameInterval := time.Second / 50
			for {
				start := time.Now()
				m.RunFrame()
				if err := renderer.DrawFrame(m); err != nil {
					return err
				}
				if renderer.PollQuit() {
					return nil
				}
				if elapsed := time.Since(start); elapsed < frameInterval {
					time.Sleep(frameInterval - elapsed)
				}
			}
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "zxgo.ini", "Path to config file (created with defaults if missing)")
	runCmd.Flags().StringVar(&romPath, "rom", "", "Main ROM image (48K or concatenated 128K)")
	runCmd.Flags().StringVar(&trdosROMPath, "trdos-rom", "", "TR-DOS overlay ROM image")
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Load a .sna or .z80 snapshot at startup")
	runCmd.Flags().StringVar(&diskPath, "disk", "", "TRD disk image to mount in the floppy controller")
	runCmd.Flags().IntVar(&scale, "scale", 2, "Integer pixel scale factor for the display window")

	var catalogDiskPath string
	catalogCmd := &cobra.Command{
		Use:   "catalog [disk.trd]",
		Short: "List the catalog entries of a TRD disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogDiskPath = args[0]
			disk, err := trd.Load(catalogDiskPath)
			if err != nil {
				return err
			}
			entries, ok := disk.Catalog()
			if !ok {
				return fmt.Errorf("zxgo: could not read catalog from %s", catalogDiskPath)
			}
			for _, e := range entries {
				fmt.Printf("%-8s.%c  %5d sectors  start track %d sector %d\n",
					e.Filename, e.Extension, e.LengthSectors, e.StartTrack, e.StartSector)
			}
			return nil
		},
	}

	diskInfoCmd := &cobra.Command{
		Use:   "diskinfo [disk.trd]",
		Short: "Print a TRD disk image's header information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			disk, err := trd.Load(args[0])
			if err != nil {
				return err
			}
			info, ok := disk.DiskInfo()
			if !ok {
				return fmt.Errorf("zxgo: could not read disk info from %s", args[0])
			}
			fmt.Printf("Disk name:    %s\n", info.DiskName)
			fmt.Printf("Free sectors: %d\n", info.FreeSectors)
			fmt.Printf("Disk type:    0x%02X\n", info.DiskType)
			fmt.Printf("File count:   %d\n", info.NumFiles)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, catalogCmd, diskInfoCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSnapshot(path string, m *machine.Machine) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.HasSuffix(strings.ToLower(path), ".z80") {
		return snapshot.LoadZ80(data, m.CPU, m.Memory)
	}
	return snapshot.LoadSNA(data, m.CPU, m.Memory)
}
