package main

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/assistly-go/pkg/assistly"
)

func (c *cli) detailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Add or change a customer's emails, phones and addresses",
	}
	cmd.AddCommand(c.detailsCreateCmd(), c.detailsUpdateCmd())
	return cmd
}

func (c *cli) detailsCreateCmd() *cobra.Command {
	var attrs []string
	cmd := &cobra.Command{
		Use:   "create ID KIND VALUE",
		Short: "Add an email, phone or address to a customer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := assistly.ParseDetailKind(args[1])
			if err != nil {
				return err
			}
			opts, err := parsePairs(attrs)
			if err != nil {
				return err
			}
			api, err := c.resource()
			if err != nil {
				return err
			}
			v, err := api.CreateCustomerDetail(cmd.Context(), args[0], kind, args[2], opts)
			if err != nil {
				return err
			}
			return c.print(v)
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "extra detail attribute as key=value, e.g. customer_contact_type=work (repeatable)")
	return cmd
}

func (c *cli) detailsUpdateCmd() *cobra.Command {
	var attrs []string
	cmd := &cobra.Command{
		Use:   "update ID KIND DETAIL_ID",
		Short: "Update an email, phone or address of a customer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := assistly.ParseDetailKind(args[1])
			if err != nil {
				return err
			}
			params, err := parsePairs(attrs)
			if err != nil {
				return err
			}
			api, err := c.resource()
			if err != nil {
				return err
			}
			v, err := api.UpdateCustomerDetail(cmd.Context(), args[0], kind, args[2], params)
			if err != nil {
				return err
			}
			return c.print(v)
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "detail attribute as key=value (repeatable)")
	return cmd
}
