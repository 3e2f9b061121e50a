package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/paths"
	"github.com/aidanlsb/rtend/internal/ui"
)

type profileInfo struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles that have a database",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := getResolver()
		if err != nil {
			return err
		}
		names, err := r.Profiles()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		active, _ := paths.ProfileFile(resolvedProfile)
		profiles := make([]profileInfo, len(names))
		for i, name := range names {
			profiles[i] = profileInfo{Name: name, Active: name+paths.DBExt == active}
		}

		if isJSONOutput() {
			outputSuccess(profiles, &Meta{Count: len(profiles)})
			return nil
		}
		if len(profiles) == 0 {
			fmt.Println(ui.Infof("No profiles in %s", r.Dir))
			fmt.Println(ui.Hint("Run 'rtend init' to create one"))
			return nil
		}
		for _, p := range profiles {
			if p.Active {
				fmt.Printf("%s %s\n", ui.Accent.Render("*"), ui.Bold.Render(p.Name))
				continue
			}
			fmt.Printf("  %s\n", p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
