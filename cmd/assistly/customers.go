package main

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

func (c *cli) customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List, show, create and update customers",
	}
	cmd.AddCommand(
		c.customersListCmd(),
		c.customersGetCmd(),
		c.customersCreateCmd(),
		c.customersUpdateCmd(),
	)
	return cmd
}

func (c *cli) customersListCmd() *cobra.Command {
	var (
		sinceID string
		count   int
		params  []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := parsePairs(params)
			if err != nil {
				return err
			}
			if filters == nil {
				filters = httpclient.Params{}
			}
			if sinceID != "" {
				filters["since_id"] = sinceID
			}
			if count > 0 {
				filters["count"] = count
			}

			api, err := c.resource()
			if err != nil {
				return err
			}
			v, err := api.Customers(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return c.print(v)
		},
	}
	cmd.Flags().StringVar(&sinceID, "since-id", "", "only list customers after this id")
	cmd.Flags().IntVar(&count, "count", 0, "page size")
	cmd.Flags().StringArrayVar(&params, "param", nil, "extra filter as key=value (repeatable)")
	return cmd
}

func (c *cli) customersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.resource()
			if err != nil {
				return err
			}
			v, err := api.Customer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(v)
		},
	}
}

func (c *cli) customersCreateCmd() *cobra.Command {
	var attrs []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := parsePairs(attrs)
			if err != nil {
				return err
			}
			api, err := c.resource()
			if err != nil {
				return err
			}
			v, err := api.CreateCustomer(cmd.Context(), params)
			if err != nil {
				return err
			}
			return c.print(v)
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "customer attribute as key=value (repeatable)")
	return cmd
}

func (c *cli) customersUpdateCmd() *cobra.Command {
	var attrs []string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parsePairs(attrs)
			if err != nil {
				return err
			}
			api, err := c.resource()
			if err != nil {
				return err
			}
			v, err := api.UpdateCustomer(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return c.print(v)
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "customer attribute as key=value (repeatable)")
	return cmd
}
