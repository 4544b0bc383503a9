// radiance_query runs queries against the radiance ClickHouse HTTP endpoint
// and prints the resulting rows.
//
// Connection parameters come from RADIANCE_HOST, RADIANCE_USER and
// RADIANCE_PASSWORD, or from the matching flags or a config.yaml. Without a
// subcommand it prints the leader replay statistics as indented JSON.
package main

import (
	"k8s.io/klog/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		klog.Exitf("%v", err)
	}
}
