package main

import (
	goflag "flag"
	"strings"

	"github.com/certusone/radiance-client/internal/utils"
	"github.com/certusone/radiance-client/pkg/output"
	"github.com/certusone/radiance-client/pkg/radiance"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const (
	configFlag = "config"
	formatFlag = "format"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "radiance_query",
		Short:         "Query the radiance analytics endpoint",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLeaderStats(cmd, false)
		},
	}

	var config radiance.Config
	config.AddToFlagSet(cmd.PersistentFlags())
	cmd.PersistentFlags().String(configFlag, "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().String(formatFlag, output.DefaultFormat,
		"Output format, valid: "+strings.Join(output.Names(), ", "))

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newLeaderStatsCmd(), newQueryCmd())
	return cmd
}

// session is what every command needs to run: a client and a formatter.
type session struct {
	client    *radiance.Client
	formatter output.Formatter
}

func newSession(cmd *cobra.Command) (*session, error) {
	configFile, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, err
	}
	v, err := utils.SetupConfigFile(cmd.Flags(), configFile)
	if err != nil {
		return nil, errors.Wrap(err, "fatal error config file")
	}

	var config radiance.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if config.Host == "" {
		klog.Warning("no host configured, set RADIANCE_HOST or --host")
	}

	f, err := output.Get(v.GetString(formatFlag))
	if err != nil {
		return nil, err
	}

	klog.V(1).Infof("querying %s as user %q", config.Host, config.User)
	return &session{
		client:    radiance.NewClient(config),
		formatter: f,
	}, nil
}

func (s *session) print(cmd *cobra.Command, res *output.Result) error {
	return s.formatter.Format(cmd.OutOrStdout(), res)
}

func logStatistics(r *radiance.Response) {
	klog.V(1).Infof("%d rows in %.3fs, read %d rows, %d bytes",
		len(r.Data), r.Statistics.Elapsed, r.Statistics.RowsRead, r.Statistics.BytesRead)
}
