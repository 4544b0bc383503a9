package main

import (
	"github.com/certusone/radiance-client/pkg/output"
	"github.com/certusone/radiance-client/pkg/radiance"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const typedFlag = "typed"

func newLeaderStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leader-stats",
		Short: "Print median replay time per slot window and leader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typed, err := cmd.Flags().GetBool(typedFlag)
			if err != nil {
				return err
			}
			return runLeaderStats(cmd, typed)
		},
	}
	cmd.Flags().Bool(typedFlag, false,
		"Decode rows into typed leader stats before printing (64-bit integers are printed unquoted)")
	return cmd
}

func runLeaderStats(cmd *cobra.Command, typed bool) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	r, err := s.client.LeaderStatsResponse()
	if err != nil {
		return errors.Wrap(err, "failed to get leader stats")
	}
	logStatistics(r)

	res := output.NewResult(r)
	if typed {
		stats, err := radiance.ParseLeaderStats(r.Data)
		if err != nil {
			return errors.Wrap(err, "failed to get leader stats")
		}
		res = leaderStatsResult(stats)
	}
	return s.print(cmd, res)
}

func leaderStatsResult(stats []radiance.LeaderStat) *output.Result {
	rows := make([]radiance.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, radiance.Row{
			radiance.ColSlotWindow:   s.SlotWindow,
			radiance.ColLeader:       s.Leader,
			radiance.ColMedianReplay: s.MedianReplay,
			radiance.ColCount:        s.Count,
		})
	}
	return &output.Result{
		Columns: []string{
			radiance.ColSlotWindow,
			radiance.ColLeader,
			radiance.ColMedianReplay,
			radiance.ColCount,
		},
		Rows: rows,
	}
}
