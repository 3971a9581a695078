package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmms-service",
	Short: "Maintenance management backend: assets, work orders, portals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}
