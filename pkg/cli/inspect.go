package cli

import (
	"fmt"

	"github.com/getmockd/reqparam/pkg/cli/internal/output"
	"github.com/getmockd/reqparam/pkg/config"
	"github.com/getmockd/reqparam/pkg/validation"
	"github.com/spf13/cobra"
)

// ParameterOutput is the JSON view of one compiled parameter definition.
type ParameterOutput struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	Lookup   string `json:"lookup"`
	Type     string `json:"type,omitempty"`
	Format   string `json:"format,omitempty"`
	Items    string `json:"items,omitempty"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// RouteOutput is the JSON view of one compiled route.
type RouteOutput struct {
	Name       string            `json:"name"`
	Method     string            `json:"method,omitempty"`
	Path       string            `json:"path,omitempty"`
	Parameters []ParameterOutput `json:"parameters"`
}

var inspectRoute string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the compiled parameter definitions of routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRouteTable(routesPath)
		if err != nil {
			return err
		}

		names := table.Names()
		if inspectRoute != "" {
			names = []string{inspectRoute}
		}

		routes := make([]RouteOutput, 0, len(names))
		for _, name := range names {
			ro, err := describeRoute(table, name)
			if err != nil {
				return err
			}
			if len(ro.Parameters) == 0 {
				output.Warn(cmd.ErrOrStderr(), "route %q declares no parameters", name)
			}
			routes = append(routes, ro)
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, routes)
		}

		for i, r := range routes {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s %s %s\n", r.Name, r.Method, r.Path)
			tw := output.Table(w)
			fmt.Fprintln(tw, "  NAME\tSOURCE\tLOOKUP\tTYPE\tFORMAT\tREQUIRED\tDEFAULT")
			for _, p := range r.Parameters {
				typ := p.Type
				if p.Items != "" {
					typ += "[" + p.Items + "]"
				}
				def := "-"
				if p.Default != nil {
					def = fmt.Sprint(p.Default)
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%t\t%s\n",
					p.Name, p.Source, p.Lookup, dash(typ), dash(p.Format), p.Required, def)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}

func describeRoute(table *config.RouteTable, name string) (RouteOutput, error) {
	v, err := table.Lookup(name)
	if err != nil {
		return RouteOutput{}, err
	}
	route, _ := table.Route(name)

	ro := RouteOutput{Name: route.Name, Method: route.Method, Path: route.Path}
	for _, d := range v.Definitions() {
		ro.Parameters = append(ro.Parameters, parameterOutput(d))
	}
	if ro.Parameters == nil {
		ro.Parameters = []ParameterOutput{}
	}
	return ro, nil
}

func parameterOutput(d validation.ParameterDefinition) ParameterOutput {
	p := ParameterOutput{
		Name:     d.Name,
		Source:   d.Source.String(),
		Lookup:   d.LookupName(),
		Type:     d.ExpectedType,
		Format:   d.Format,
		Items:    d.ItemType,
		Required: d.Required,
	}
	if d.HasDefault {
		p.Default = d.Default
	}
	return p
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	inspectCmd.Flags().StringVar(&routesPath, "routes", "", "Route file or glob (default $"+config.EnvRoutes+")")
	inspectCmd.Flags().StringVar(&inspectRoute, "route", "", "Only show this route")

	rootCmd.AddCommand(inspectCmd)
}
