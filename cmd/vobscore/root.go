/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// The vobscore CLI is a thin demonstration front end over the Core API
// (spec §6.4), grounded on observerly-skysolve/cmd/root.go's
// root-command-plus-subcommand style.
package main

/*****************************************************************************************************************/

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JMMC-OpenDev/vobscore/internal/service"
	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/scenario"
)

/*****************************************************************************************************************/

var rootCommand = &cobra.Command{
	Use:   "vobscore",
	Short: "vobscore is a command-line tool for running calibrator-star search scenarios.",
	Long:  "vobscore is a command-line tool for running calibrator-star search scenarios against virtual observatory catalogs.",
}

/*****************************************************************************************************************/

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCommand.Execute(); err != nil {
		panic(err)
	}
}

/*****************************************************************************************************************/

var (
	flagRA       float64
	flagDec      float64
	flagRadius   float64
	flagBand     string
	flagMagMin   float64
	flagMagMax   float64
	flagEndpoint string
)

/*****************************************************************************************************************/

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "run the default bright-V calibrator scenario against a target position",
	Long:  "run executes the bright-V calibrator scenario: seed from ASCC then enrich from a chain of secondary catalogs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		wk := registry.NewWellKnown()

		client, err := NewMultiCatalogClient(wk, flagEndpoint, 30*time.Second)
		if err != nil {
			return err
		}

		known := catalog.WellKnownMeta(wk.Registry.Len())

		svc := service.New(wk, client, known)
		svc.Register("bright_v", BrightV(wk))

		req := service.Request{
			RA:       flagRA,
			Dec:      flagDec,
			Geometry: catalog.Cone(flagRadius),
			Band:     flagBand,
			MagMin:   flagMagMin,
			MagMax:   flagMagMax,
		}

		sink := scenario.StatusSinkFunc(func(s scenario.Status) {
			fmt.Printf("%d/%d\t%d\n", s.Index, s.Total, s.CatalogID)
		})

		res, err := svc.RunScenario(context.Background(), "bright_v", req, sink, nil)
		if err != nil {
			return err
		}

		fmt.Printf("run %s: %d calibrators found\n", res.RunID, res.Stars.Len())

		for _, s := range res.Stars.Stars() {
			ra, dec, err := s.GetRaDec()
			if err != nil {
				continue
			}

			mag, _ := s.Get(wk.MagV).Float()

			fmt.Printf("  %.6f %.6f mag_v=%.2f\n", ra, dec, mag)
		}

		return nil
	},
}

/*****************************************************************************************************************/

func init() {
	runCommand.Flags().Float64Var(&flagRA, "ra", 0, "target right ascension, in degrees")
	runCommand.Flags().Float64Var(&flagDec, "dec", 0, "target declination, in degrees")
	runCommand.Flags().Float64Var(&flagRadius, "radius", 0.25, "cone-search radius, in degrees")
	runCommand.Flags().StringVar(&flagBand, "band", "V", "photometric band to filter on")
	runCommand.Flags().Float64Var(&flagMagMin, "mag-min", -5, "minimum magnitude")
	runCommand.Flags().Float64Var(&flagMagMax, "mag-max", 15, "maximum magnitude")
	runCommand.Flags().StringVar(&flagEndpoint, "endpoint", "https://tapvizier.cds.unistra.fr/TAPVizieR/tap/sync", "TAP service endpoint")

	runCommand.MarkFlagRequired("ra")
	runCommand.MarkFlagRequired("dec")

	rootCommand.AddCommand(runCommand)
}
