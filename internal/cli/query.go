package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	v1 "github.com/aevon-lab/sift/internal/api/v1"
	"github.com/aevon-lab/sift/internal/core/collection"
	"github.com/aevon-lab/sift/internal/core/logging"
	"github.com/aevon-lab/sift/internal/core/path"
	"github.com/aevon-lab/sift/internal/dataset"
	jsonformat "github.com/aevon-lab/sift/internal/dataset/formats/json"
	"github.com/aevon-lab/sift/internal/dataset/formats/protobuf"
	yamlformat "github.com/aevon-lab/sift/internal/dataset/formats/yaml"
	"github.com/aevon-lab/sift/internal/query"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	File      string
	Schema    string
	Message   string
	Op        string
	Path      string
	ValuePath string
	Values    []string
	Names     []string
	Scale     int32
	Connector string
	SkipEmpty bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one operation over a local record file",
		Long: `Run one operation over a local record file.

The file holds a top-level list of records. Its format follows the
extension: .json, .yaml or .yml. Pass --schema with a .proto file to
read a .json file of protobuf messages instead.

Each --value is read as a YAML scalar, so --value 25 matches a numeric
age and --value shu matches a string.

Examples:
  sift query --file members.yaml --op group --path attrs.state
  sift query --file members.json --op select --path age --value 23 --value 25
  sift query --file members.json --op avg --names age,score --scale 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.buildQuery(cmd)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid flags", err)
			}
			return runQuery(cmd.Context(), opts, q, &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "record file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", ".proto schema for a file of protobuf messages")
	cmd.Flags().StringVar(&opts.Message, "message", "", "message type in --schema (default: first message)")
	cmd.Flags().StringVar(&opts.Op, "op", "", fmt.Sprintf("operation (%s)", strings.Join(query.Ops(), "|")))
	cmd.Flags().StringVarP(&opts.Path, "path", "p", "", "property path")
	cmd.Flags().StringVar(&opts.ValuePath, "value-path", "", "value path for value_map")
	cmd.Flags().StringArrayVar(&opts.Values, "value", nil, "value to match (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Names, "names", nil, "numeric properties for sum and avg")
	cmd.Flags().Int32Var(&opts.Scale, "scale", query.DefaultOptions.Scale, "fractional digits for avg")
	cmd.Flags().StringVar(&opts.Connector, "connector", query.DefaultOptions.Connector, "separator for join")
	cmd.Flags().BoolVar(&opts.SkipEmpty, "skip-empty", false, "leave empty strings out of join")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("op")

	return cmd
}

func (opts *QueryOptions) buildQuery(cmd *cobra.Command) (v1.Query, error) {
	q := v1.Query{
		Op:        opts.Op,
		Path:      opts.Path,
		ValuePath: opts.ValuePath,
		Names:     opts.Names,
		SkipEmpty: opts.SkipEmpty,
	}
	for _, raw := range opts.Values {
		v, err := parseValue(raw)
		if err != nil {
			return q, err
		}
		q.Values = append(q.Values, v)
	}
	if cmd.Flags().Changed("scale") {
		q.Scale = &opts.Scale
	}
	if cmd.Flags().Changed("connector") {
		q.Connector = &opts.Connector
	}
	return q, nil
}

// parseValue reads a flag value as a YAML scalar: "25" is an int, "2.5" a
// float, "true" a bool, "~" nil and anything else a string.
func parseValue(raw string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid --value %q: %w", raw, err)
	}
	switch v.(type) {
	case map[string]any, []any:
		return nil, fmt.Errorf("invalid --value %q: must be a scalar", raw)
	}
	return v, nil
}

func runQuery(ctx context.Context, opts *QueryOptions, q v1.Query, out *OutputFormatter) error {
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := loadRecords(ctx, opts)
	if err != nil {
		_ = out.Error("E001", err.Error(), map[string]string{"file": opts.File})
		return WrapExitError(ExitCommandError, "failed to load records", err)
	}
	out.VerboseLog("Loaded %d records from %s", len(records), opts.File)

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out.GetErrWriter(), &slog.HandlerOptions{Level: level}))
	ctx = logging.WithLogger(ctx, logger)

	result, err := query.Execute(ctx, records, q, query.DefaultOptions)
	if err != nil {
		_ = out.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return out.Success(result.Result)
}

// loadRecords decodes the file named by opts with the same decoders the
// server uses for registered datasets.
func loadRecords(ctx context.Context, opts *QueryOptions) ([]any, error) {
	content, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(opts.File), filepath.Ext(opts.File))
	ds := &dataset.Dataset{Name: name, Content: content, Message: opts.Message}

	var decoder dataset.Decoder
	switch ext := strings.ToLower(filepath.Ext(opts.File)); {
	case opts.Schema != "":
		if ext != ".json" {
			return nil, fmt.Errorf("protobuf records must be a .json file, got %q", ext)
		}
		schema, err := os.ReadFile(opts.Schema)
		if err != nil {
			return nil, err
		}
		ds.Format, ds.Schema = dataset.FormatProtobuf, schema
		decoder = protobuf.NewDecoder()
	case ext == ".json":
		ds.Format = dataset.FormatJSON
		decoder = jsonformat.NewDecoder()
	case ext == ".yaml" || ext == ".yml":
		ds.Format = dataset.FormatYaml
		decoder = yamlformat.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported file extension %q (must be .json, .yaml or .yml)", ext)
	}

	return decoder.Decode(ctx, ds)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, query.ErrInvalidQuery), errors.Is(err, collection.ErrInvalidArgument):
		return "E002"
	case errors.Is(err, path.ErrResolution), errors.Is(err, collection.ErrIncomparableKey):
		return "E003"
	default:
		return "E999"
	}
}
