package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/resource"
)

// petFlags: solo los flags marcados como Changed llegan al gateway.
type petFlags struct {
	name   string
	breed  string
	gender string
	weight int64
}

func (f *petFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Pet name")
	cmd.Flags().StringVar(&f.breed, "breed", "", "Breed")
	cmd.Flags().StringVar(&f.gender, "gender", "", "unknown, male or female (or 0, 1, 2)")
	cmd.Flags().Int64Var(&f.weight, "weight", 0, "Weight, must be >= 0")
}

func (f *petFlags) values(cmd *cobra.Command) (pets.Values, error) {
	var v pets.Values
	if cmd.Flags().Changed("name") {
		v.Name = &f.name
	}
	if cmd.Flags().Changed("breed") {
		v.Breed = &f.breed
	}
	if cmd.Flags().Changed("gender") {
		g, err := pets.ParseGender(f.gender)
		if err != nil {
			return pets.Values{}, err
		}
		v.Gender = &g
	}
	if cmd.Flags().Changed("weight") {
		v.Weight = &f.weight
	}
	return v, nil
}

type filterFlags struct {
	breed  string
	gender string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.breed, "breed", "", "Only pets of this breed")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Only pets of this gender")
}

func newListCmd(root *rootFlags) *cobra.Command {
	var (
		filter filterFlags
		sort   string
		fields string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, root, func(ctx context.Context, svc *pets.Service) error {
				sel, err := pets.FilterSelection(filter.breed, filter.gender)
				if err != nil {
					return domainError("list", err)
				}
				cur, err := svc.Query(ctx, svc.Match(pets.PathPets), pets.Query{
					Columns:   pets.SplitColumns(fields),
					Selection: sel,
					SortOrder: sort,
				})
				if err != nil {
					return domainError("list", err)
				}
				items, err := cur.All(ctx)
				if err != nil {
					return domainError("list", err)
				}
				return printPets(cmd.OutOrStdout(), items)
			})
		},
	}
	filter.bind(cmd)
	cmd.Flags().StringVar(&sort, "sort", "", "Sort order, e.g. 'name DESC, id'")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma separated columns to fetch")
	return cmd
}

func newGetCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|uri>",
		Short: "Show a single pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, root, func(ctx context.Context, svc *pets.Service) error {
				ref := svc.Match(refArg(args[0]))
				if ref.Kind != resource.Item {
					return newCommandError("get: not a pet reference: "+args[0], nil, 2)
				}
				cur, err := svc.Query(ctx, ref, pets.Query{})
				if err != nil {
					return domainError("get", err)
				}
				p, ok, err := cur.First(ctx)
				if err != nil {
					return domainError("get", err)
				}
				if !ok {
					return newCommandError("get: pet not found: "+ref.Path, nil, 3)
				}
				return printPets(cmd.OutOrStdout(), []pets.Pet{p})
			})
		},
	}
}

func newAddCmd(root *rootFlags) *cobra.Command {
	var pf petFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert a pet (--name and --gender are required)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := pf.values(cmd)
			if err != nil {
				return domainError("add", err)
			}
			return withService(cmd, root, func(ctx context.Context, svc *pets.Service) error {
				item, err := svc.Insert(ctx, svc.Match(pets.PathPets), v)
				if err != nil {
					return domainError("add", err)
				}
				if item == nil {
					return newCommandError("add: failed to insert pet", nil, 1)
				}
				fmt.Fprintln(cmd.OutOrStdout(), item.Path)
				return nil
			})
		},
	}
	pf.bind(cmd)
	return cmd
}

func newUpdateCmd(root *rootFlags) *cobra.Command {
	var pf petFlags
	cmd := &cobra.Command{
		Use:   "update <id|uri>",
		Short: "Update the given fields of a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := pf.values(cmd)
			if err != nil {
				return domainError("update", err)
			}
			return withService(cmd, root, func(ctx context.Context, svc *pets.Service) error {
				n, err := svc.Update(ctx, svc.Match(refArg(args[0])), v, pets.Selection{})
				if err != nil {
					return domainError("update", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %d\n", n)
				return nil
			})
		},
	}
	pf.bind(cmd)
	return cmd
}

func newDeleteCmd(root *rootFlags) *cobra.Command {
	var (
		filter filterFlags
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "delete [id|uri]",
		Short: "Delete a pet, or the pets matching the filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := pets.PathPets
			if len(args) == 1 {
				target = refArg(args[0])
			} else if filter.breed == "" && filter.gender == "" && !all {
				return newCommandError("delete: refusing to delete every pet without --all", nil, 2)
			}

			sel, err := pets.FilterSelection(filter.breed, filter.gender)
			if err != nil {
				return domainError("delete", err)
			}
			return withService(cmd, root, func(ctx context.Context, svc *pets.Service) error {
				n, err := svc.Delete(ctx, svc.Match(target), sel)
				if err != nil {
					return domainError("delete", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", n)
				return nil
			})
		},
	}
	filter.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Allow deleting the whole collection")
	return cmd
}

func newTypeCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "type <uri>",
		Short: "Print the content kind of a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, root, func(_ context.Context, svc *pets.Service) error {
				kind, err := svc.TypeOf(svc.Match(refArg(args[0])))
				if err != nil {
					return domainError("type", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), kind)
				return nil
			})
		},
	}
}

func printPets(w io.Writer, items []pets.Pet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBREED\tGENDER\tWEIGHT")
	for _, p := range items {
		breed, weight := "-", "-"
		if p.Breed != nil {
			breed = *p.Breed
		}
		if p.Weight != nil {
			weight = strconv.FormatInt(*p.Weight, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, breed, p.Gender, weight)
	}
	return tw.Flush()
}
