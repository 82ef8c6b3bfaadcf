package main

import (
	"fmt"
	"strings"

	"github.com/aerovista-us/echovalentine/internal/classifier"
	"github.com/spf13/cobra"
)

// rulesCmd creates the rules command
func rulesCmd() *cobra.Command {
	var (
		rulesFile string
		asYAML    bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the active classification rules",
		Long:  `Print the role and owner rule tables in precedence order. The first matching rule wins.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := classifier.LoadPolicy(rulesFile)
			if err != nil {
				return err
			}

			if asYAML {
				data, err := policy.Marshal()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), renderPolicy(policy))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "Classification rules file (YAML)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the rules as YAML")

	return cmd
}

// renderPolicy formats the rule tables for the terminal
func renderPolicy(p *classifier.Policy) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ROLE RULES") + "\n")
	for i, r := range p.Roles {
		var when []string
		if len(r.Files) > 0 {
			when = append(when, "file in "+strings.Join(r.Files, ", "))
		}
		if len(r.Extensions) > 0 {
			when = append(when, "ext in "+strings.Join(r.Extensions, ", "))
		}
		if len(r.ParentDirs) > 0 {
			when = append(when, "parent in "+strings.Join(r.ParentDirs, ", "))
		}
		fmt.Fprintf(&b, "  %2d. %-14s %s\n", i+1, r.Role, strings.Join(when, " | "))
	}
	fmt.Fprintf(&b, "      %-14s %s\n\n", p.DefaultRole, labelStyle.Render("(default)"))

	b.WriteString(titleStyle.Render("OWNER RULES") + "\n")
	n := 1
	for _, r := range p.OwnerByExt {
		fmt.Fprintf(&b, "  %2d. %-28s ext in %s\n", n, r.Owner, strings.Join(r.Extensions, ", "))
		n++
	}
	for _, r := range p.OwnerByPath {
		fmt.Fprintf(&b, "  %2d. %-28s path contains %s\n", n, r.Owner, strings.Join(r.Keywords, ", "))
		n++
	}
	fmt.Fprintf(&b, "      %-28s %s\n", p.DefaultOwner, labelStyle.Render("(default)"))

	return b.String()
}
