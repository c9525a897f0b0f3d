package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
	"github.com/benedict-erwin/blog-service/server"
)

var openapiFormat string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	Long:  `Builds the OpenAPI document from the registered routes and writes it to stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Mounting the routes records their documentation
		server.New()

		doc, err := openapi.Build(cmd.Context(), handler.DocumentInfo())
		if err != nil {
			return err
		}

		var out []byte
		switch openapiFormat {
		case "json":
			out, err = openapi.JSON(doc)
		case "yaml":
			out, err = openapi.YAML(doc)
		default:
			return fmt.Errorf("unknown format %q, use json or yaml", openapiFormat)
		}
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "json", "Output format: json or yaml")
	rootCmd.AddCommand(openapiCmd)
}
