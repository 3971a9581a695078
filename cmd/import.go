package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cmms-platform/cmms-service/internal/config"
	"github.com/cmms-platform/cmms-service/internal/database"
	"github.com/cmms-platform/cmms-service/internal/importer"
	"github.com/cmms-platform/cmms-service/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import [assets|parts] <file.xlsx>",
	Short: "Bulk load entities from an xlsx workbook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, path := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		db, err := database.Open(cfg.DSN())
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := context.Background()
		switch kind {
		case "assets":
			assets, rowErrs, err := importer.ParseAssets(f)
			if err != nil {
				return err
			}
			if err := service.NewAssetService(db).CreateBulk(ctx, assets); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"imported": len(assets), "row_errors": len(rowErrs)}).Info("asset import done")
		case "parts":
			parts, rowErrs, err := importer.ParseParts(f)
			if err != nil {
				return err
			}
			if err := service.NewPartService(db).CreateBulk(ctx, parts); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"imported": len(parts), "row_errors": len(rowErrs)}).Info("part import done")
		default:
			return fmt.Errorf("unknown import kind %q, want assets or parts", kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
