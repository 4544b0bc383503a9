package main

import (
	"io/ioutil"
	"strings"

	"github.com/certusone/radiance-client/pkg/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [TEXT...]",
		Short: "Run a query and print its rows",
		Long: "Run a query and print its rows. The query text is the arguments joined\n" +
			"with spaces, or standard input if no arguments are given. A FORMAT JSON\n" +
			"directive is appended, so the text must not carry its own FORMAT clause.",
		RunE: runQuery,
	}
}

func queryText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := ioutil.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "error while reading query from stdin")
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	q, err := queryText(cmd, args)
	if err != nil {
		return err
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	r, err := s.client.QueryResponse(q)
	if err != nil {
		return errors.Wrap(err, "error while running query")
	}
	logStatistics(r)
	return s.print(cmd, output.NewResult(r))
}
