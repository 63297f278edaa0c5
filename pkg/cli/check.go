package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/getmockd/reqparam/pkg/cli/internal/output"
	"github.com/getmockd/reqparam/pkg/cli/internal/parse"
	"github.com/getmockd/reqparam/pkg/config"
	"github.com/getmockd/reqparam/pkg/validation"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var (
	routesPath string
	routeName  string

	queryArgs  []string
	pathArgs   []string
	headerArgs []string
	cookieArgs []string
	queryJSON  string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate request parameters against a route",
	Long: `Validate raw request parameters against the contract of one route and print
the coerced parameters as JSON.

A --query key given more than once is passed to array parameters as a list.
--query-json supplies the pre-parsed query object directly and wins over
--query for the keys it sets.

On failure the problem details are printed to stdout and the exit code is 1.`,
	Example: `  reqparam check --routes routes.yaml --route get-user \
    --path user_id=42 --header X-Token=abc --query verbose=true

  reqparam check --route list-orders --query ids=1 --query ids=2
  reqparam check --route list-orders --query-json '{"ids": [1, 2]}'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRouteTable(routesPath)
		if err != nil {
			return err
		}
		v, err := table.Lookup(routeName)
		if err != nil {
			return err
		}

		inputs, err := buildInputs()
		if err != nil {
			return err
		}

		params, err := v.ValidateAndExtract(inputs)
		if err != nil {
			var verr *validation.ValidationError
			if !errors.As(err, &verr) {
				return err
			}
			if encErr := output.JSON(cmd.OutOrStdout(), validation.NewProblemDetails(verr, 0)); encErr != nil {
				return encErr
			}
			return ErrValidationFailed
		}
		return output.JSON(cmd.OutOrStdout(), params)
	},
}

// buildInputs turns the repeated key=value flags into the raw maps a
// validator consumes. Header keys are normalized the way definitions are.
func buildInputs() (*validation.RawParameterInputs, error) {
	query, err := parse.Pairs(queryArgs)
	if err != nil {
		return nil, fmt.Errorf("--query: %w", err)
	}
	path, err := parse.Pairs(pathArgs)
	if err != nil {
		return nil, fmt.Errorf("--path: %w", err)
	}
	headers, err := parse.Pairs(headerArgs)
	if err != nil {
		return nil, fmt.Errorf("--header: %w", err)
	}
	cookies, err := parse.Pairs(cookieArgs)
	if err != nil {
		return nil, fmt.Errorf("--cookie: %w", err)
	}

	inputs := &validation.RawParameterInputs{
		QueryJSON: make(map[string]any, len(query)),
		Query:     parse.Last(query),
		Path:      parse.Last(path),
		Headers:   make(map[string]string, len(headers)),
		Cookies:   parse.Last(cookies),
	}
	for k, v := range parse.Last(headers) {
		inputs.Headers[validation.NormalizeHeaderName(k)] = v
	}

	for k, vs := range query {
		if len(vs) == 1 {
			inputs.QueryJSON[k] = vs[0]
			continue
		}
		items := make([]any, len(vs))
		for i, s := range vs {
			items[i] = s
		}
		inputs.QueryJSON[k] = items
	}

	if queryJSON != "" {
		parsed, err := oj.ParseString(queryJSON)
		if err != nil {
			return nil, fmt.Errorf("--query-json: %w", err)
		}
		obj, ok := parsed.(map[string]any)
		if !ok {
			return nil, ErrInvalidQueryJSON
		}
		for k, v := range obj {
			inputs.QueryJSON[k] = v
		}
	}
	return inputs, nil
}

// loadRouteTable loads route files from path, or from REQPARAM_ROUTES when
// path is empty, and compiles them.
func loadRouteTable(path string) (*config.RouteTable, error) {
	if path == "" {
		path = os.Getenv(config.EnvRoutes)
	}
	set, err := config.LoadRoutes(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded routes", "source", path, "count", len(set.Routes))
	return set.Compile(validation.WithLogger(logger))
}

func init() {
	checkCmd.Flags().StringVar(&routesPath, "routes", "", "Route file or glob (default $"+config.EnvRoutes+")")
	checkCmd.Flags().StringVar(&routeName, "route", "", "Route name to validate against")
	checkCmd.Flags().StringArrayVar(&queryArgs, "query", nil, "Query parameter key=value (repeatable)")
	checkCmd.Flags().StringArrayVar(&pathArgs, "path", nil, "Path parameter key=value (repeatable)")
	checkCmd.Flags().StringArrayVar(&headerArgs, "header", nil, "Header key=value (repeatable)")
	checkCmd.Flags().StringArrayVar(&cookieArgs, "cookie", nil, "Cookie key=value (repeatable)")
	checkCmd.Flags().StringVar(&queryJSON, "query-json", "", "Pre-parsed query object as JSON")
	_ = checkCmd.MarkFlagRequired("route")

	rootCmd.AddCommand(checkCmd)
}
