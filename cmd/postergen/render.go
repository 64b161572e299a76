package main

import (
	"fmt"
	"image"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vck-social/postergen/pkg/generator"
	"github.com/vck-social/postergen/pkg/session"
	"github.com/vck-social/postergen/pkg/template"
)

// parsePairs splits key=value flags.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s %q: expected key=value", flag, p)
		}
		out[k] = v
	}
	return out, nil
}

func renderCmd(a *app) *cobra.Command {
	var (
		templateID string
		output     string
		valuesPath string
		sets       []string
		images     []string
		scale      float64
		quality    int
		profile    session.Profile
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a poster to PNG or JPEG",
		Example: `  postergen render -t festival-greeting --name "Asha" -o pongal.png
  postergen render -t campaign-poster --values values.json --image photo=me.jpg -o poster.png
  postergen render -t story-template --set accent=#c62828 --scale 0.5 -o story-preview.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := map[string]string{}
			if valuesPath != "" {
				loaded, err := template.LoadValuesFile(valuesPath)
				if err != nil {
					return err
				}
				values = loaded
			}
			overrides, err := parsePairs("set", sets)
			if err != nil {
				return err
			}
			for k, v := range overrides {
				values[k] = v
			}
			imagePaths, err := parsePairs("image", images)
			if err != nil {
				return err
			}

			fonts, err := a.fonts()
			if err != nil {
				return err
			}
			sess, err := session.Open(a.reg, templateID, profile, session.WithFonts(fonts))
			if err != nil {
				return err
			}
			if err := sess.SetFields(values); err != nil {
				return err
			}
			for key, path := range imagePaths {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read image %s: %w", key, err)
				}
				if _, err := sess.LoadImage(cmd.Context(), key, data); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rendering template: %s\n", sess.Template().Name)
			return writePoster(cmd, sess, output, scale, quality)
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Template id (see postergen list)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.png, .jpg)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON or YAML file of field values")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Image field as key=path (repeatable)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "Output scale relative to the canonical size")
	cmd.Flags().IntVar(&quality, "quality", generator.DefaultJPEGQuality, "JPEG quality")
	cmd.Flags().StringVar(&profile.Name, "name", "", "Member name")
	cmd.Flags().StringVar(&profile.Designation, "designation", "", "Member designation")
	cmd.Flags().StringVar(&profile.Constituency, "constituency", "", "Member constituency")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// writePoster renders at scale and writes the file. Scale 1 is the export
// path, anything else a preview of that size.
func writePoster(cmd *cobra.Command, sess *session.Session, output string, scale float64, quality int) error {
	var (
		img *image.RGBA
		err error
	)
	if scale == 1 {
		img, err = sess.ExportImage()
	} else {
		img, err = sess.Preview(scale)
	}
	if err != nil {
		return err
	}
	if err := generator.WriteFile(output, img, generator.Options{Quality: quality}); err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "Done: %s (%dx%d)\n", output, b.Dx(), b.Dy())
	return nil
}

func listCmd(a *app) *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the template catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := template.ParseCategory(category)
			if err != nil {
				return err
			}
			defs := a.reg.FindByCategory(cat)
			if asJSON {
				return writeJSON(cmd, defs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSIZE\tASPECT\t")
			for _, d := range defs {
				name := d.Name
				if d.Premium {
					name += " (premium)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%s\t\n", d.ID, name, d.Category, d.Width, d.Height, d.Aspect)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "Only templates in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func schemaCmd(a *app) *cobra.Command {
	var (
		templateID string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print a template's fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.reg.Lookup(templateID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				fmt.Fprint(out, template.FormatSchema(def))
			case "yaml":
				data, err := template.SchemaYAML(def)
				if err != nil {
					return err
				}
				out.Write(data)
			case "values":
				data, err := template.SampleValues(def)
				if err != nil {
					return err
				}
				out.Write(data)
			default:
				return fmt.Errorf("unknown format %q (text, yaml, values)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Template id")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: text, yaml or values")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
