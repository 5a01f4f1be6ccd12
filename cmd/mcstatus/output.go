package main

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/gardenstoney/mcstatus/protocol/client"
)

// renderResult prints a queried status as a two-column table.
func renderResult(w io.Writer, host string, port uint16, result *client.Result, favicon string) {
	st := result.Status

	members := strings.Join(st.PlayerNames(), ", ")
	if members == "" {
		members = "-"
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"Version", fmt.Sprintf("%s (protocol %d)", st.Version.Name, st.Version.Protocol)},
		{"Address", net.JoinHostPort(host, strconv.Itoa(int(port)))},
		{"Online", fmt.Sprintf("%d/%d", st.Players.Online, st.Players.Max)},
		{"Members", members},
		{"Description", st.Description.String()},
		{"Latency", result.Latency.String()},
	})
	if favicon != "" {
		table.Append([]string{"Icon", favicon})
	}
	table.Render()
}
