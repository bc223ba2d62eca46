package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/accountdesk/pkg/version"
)

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if ver == version.GetVersion() {
				cmd.Println(version.String())
				return
			}
			cmd.Println("accountdesk " + ver)
		},
	}
}
