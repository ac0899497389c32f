package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/phrazzld/generic-crud/internal/config"
	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultAPIURL = "http://localhost:8080"

// entityView describes how one collection is addressed and printed.
type entityView[T any] struct {
	collection string
	singular   string
	headers    []string
	row        func(*T) []string
}

var itemView = entityView[domain.Item]{
	collection: "items",
	singular:   "item",
	headers:    []string{"ID", "Name", "Price", "Discount", "Quantity", "Category"},
	row: func(i *domain.Item) []string {
		category := "-"
		if i.CategoryID != nil {
			category = strconv.FormatInt(*i.CategoryID, 10)
		}
		return []string{
			strconv.FormatInt(i.ID, 10),
			i.Name,
			fmt.Sprintf("%.2f", i.Price),
			fmt.Sprintf("%.2f", i.DiscountPrice),
			strconv.Itoa(i.Quantity),
			category,
		}
	},
}

var categoryView = entityView[domain.Category]{
	collection: "categories",
	singular:   "category",
	headers:    []string{"ID", "Name", "Slug", "Created"},
	row: func(c *domain.Category) []string {
		return []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Slug,
			c.CreatedAt.Format(time.RFC3339),
		}
	},
}

func newItemsCommand() *cobra.Command {
	return newEntityCommand(itemView)
}

func newCategoriesCommand() *cobra.Command {
	return newEntityCommand(categoryView)
}

// newEntityCommand builds the client command group for one collection.
func newEntityCommand[T any](view entityView[T]) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   view.collection,
		Short: fmt.Sprintf("Manage %s through a running server", view.collection),
		Long: fmt.Sprintf(`List, show, create, update and delete %s through the HTTP API.

The server address is taken from --api or $%s_API_URL.`, view.collection, config.EnvPrefix),
	}

	cmd.PersistentFlags().String("api", defaultAPIURL, "API server base URL")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	_ = v.BindPFlag("api_url", cmd.PersistentFlags().Lookup("api"))
	_ = v.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))

	resource := func() *client.Resource[T] {
		return client.NewResource[T](client.New(v.GetString("api_url")), view.collection)
	}

	cmd.AddCommand(
		newListCommand(view, v, resource),
		newGetCommand(view, v, resource),
		newWriteCommand(view, v, resource, "create"),
		newWriteCommand(view, v, resource, "update"),
		newDeleteCommand(view, resource),
	)
	return cmd
}

func newListCommand[T any](view entityView[T], v *viper.Viper, resource func() *client.Resource[T]) *cobra.Command {
	var (
		page int
		size int
		sort string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + view.collection,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if all {
				entities, err := resource().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", view.collection, err)
				}
				if len(entities) == 0 && v.GetString("output") == "table" {
					_, err := fmt.Fprintf(out, "No %s found\n", view.collection)
					return err
				}
				return render(out, v.GetString("output"), view, entities, entities)
			}

			result, err := resource().Page(cmd.Context(), client.PageOptions{Page: page, Size: size, Sort: sort})
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", view.collection, err)
			}
			if v.GetString("output") != "table" {
				return render(out, v.GetString("output"), view, result.Content, result)
			}
			if result.Empty {
				_, err := fmt.Fprintf(out, "No %s found\n", view.collection)
				return err
			}
			if err := render(out, "table", view, result.Content, nil); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\nPage %d of %d (%d total)\n", result.Page, result.TotalPages, result.TotalElements)
			return err
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	cmd.Flags().StringVar(&sort, "sort", "id,asc", "sort as field,direction")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every record instead of one page")

	return cmd
}

func newGetCommand[T any](view entityView[T], v *viper.Viper, resource func() *client.Resource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one " + view.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			entity, err := resource().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get %s %d: %w", view.singular, id, err)
			}
			return render(cmd.OutOrStdout(), v.GetString("output"), view, []T{*entity}, entity)
		},
	}
}

// newWriteCommand builds "create" or "update", both of which read the entity
// as JSON from --file, or from stdin when the file is "-".
func newWriteCommand[T any](
	view entityView[T],
	v *viper.Viper,
	resource func() *client.Resource[T],
	action string,
) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   action,
		Short: fmt.Sprintf("%s a %s from JSON", strings.ToUpper(action[:1])+action[1:], view.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			var entity T
			if err := json.Unmarshal(data, &entity); err != nil {
				return fmt.Errorf("invalid %s JSON: %w", view.singular, err)
			}

			var saved *T
			if action == "create" {
				saved, err = resource().Create(cmd.Context(), &entity)
			} else {
				saved, err = resource().Update(cmd.Context(), &entity)
			}
			if err != nil {
				return fmt.Errorf("failed to %s %s: %w", action, view.singular, err)
			}
			return render(cmd.OutOrStdout(), v.GetString("output"), view, []T{*saved}, saved)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file to read, - for stdin")
	return cmd
}

func newDeleteCommand[T any](view entityView[T], resource func() *client.Resource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one " + view.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			msg, err := resource().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete %s %d: %w", view.singular, id, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}
}

// render writes rows as a table, or raw as JSON or YAML.
func render[T any](w io.Writer, format string, view entityView[T], rows []T, raw any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)

	case "yaml":
		// Round-trip through JSON so YAML keys match the API's field names.
		data, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()

	case "table":
		table := tablewriter.NewWriter(w)
		table.Header(toAny(view.headers)...)
		for i := range rows {
			if err := table.Append(toAny(view.row(&rows[i]))...); err != nil {
				return err
			}
		}
		return table.Render()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, s := range values {
		out[i] = s
	}
	return out
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}
