package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaylaburzese/portfolio/internal/config"
	"github.com/kaylaburzese/portfolio/internal/content"
	"github.com/kaylaburzese/portfolio/internal/site"
	"github.com/kaylaburzese/portfolio/internal/view"
)

var (
	exportOut   string
	exportTheme string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the page as static files",
	Long: `Renders the portfolio once and writes index.html plus its stylesheet so
it can be hosted by any static file server. The theme toggle needs the
server; section navigation works as-is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportTheme != "dark" && exportTheme != "light" {
			return fmt.Errorf("invalid theme %q: must be dark or light", exportTheme)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		portfolio, err := content.Load(cfg.Content.Path)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		files, err := site.NewExporter(exportOut, view.ParseTheme(exportTheme)).Export(portfolio)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s/%s\n", exportOut, f)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "dist", "output directory")
	exportCmd.Flags().StringVar(&exportTheme, "theme", view.DefaultTheme.String(), "theme to render (dark or light)")
	rootCmd.AddCommand(exportCmd)
}
