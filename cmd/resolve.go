package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/languoid-cli/internal/geometry"
	"github.com/sells-group/languoid-cli/internal/languoid"
)

var (
	resolveLon     float64
	resolveLat     float64
	resolveGeoJSON string
	resolveBuffer  float64
	resolveRank    string
	resolveOutput  string
	resolveShp     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve candidate languoids near a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := resolveLocation(cmd)
		if err != nil {
			return err
		}

		buffer := resolveBuffer
		if !cmd.Flags().Changed("buffer") {
			buffer = cfg.Resolve.BufferKM
		}
		rank := resolveRank
		if !cmd.Flags().Changed("rank") {
			rank = cfg.Resolve.Rank
		}

		r := newResolver(newFetcher())
		nodes, err := r.Resolve(cmd.Context(), loc, buffer, rank)
		if err != nil {
			return err
		}

		if resolveShp != "" {
			if err := writeShapefile(resolveShp, nodes); err != nil {
				return err
			}
		}

		return printNodes(nodes, resolveOutput)
	},
}

// resolveLocation builds the query location from flags. A GeoJSON file wins
// over lon/lat when both are given.
func resolveLocation(cmd *cobra.Command) (geometry.Location, error) {
	if resolveGeoJSON != "" {
		data, err := os.ReadFile(resolveGeoJSON)
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", resolveGeoJSON)
		}
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return nil, eris.Wrapf(err, "parse %s", resolveGeoJSON)
		}
		if gc, ok := g.(*geom.GeometryCollection); ok {
			return geometry.Collection{Geoms: gc.Geoms()}, nil
		}
		return geometry.Shape{Geom: g}, nil
	}

	if !cmd.Flags().Changed("lon") || !cmd.Flags().Changed("lat") {
		return nil, eris.New("either --geojson or both --lon and --lat are required")
	}
	return geometry.Coordinate{Lon: resolveLon, Lat: resolveLat}, nil
}

func printNodes(nodes []languoid.Node, format string) error {
	switch format {
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GLOTTOCODE\tNAME\tRANK\tPARENT")
		for _, n := range nodes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Name, n.Rank, n.ParentID)
		}
		return w.Flush()
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	case "yaml":
		out, err := yaml.Marshal(nodes)
		if err != nil {
			return eris.Wrap(err, "marshal yaml")
		}
		_, err = os.Stdout.Write(out)
		return err
	case "geojson":
		return printGeoJSON(nodes)
	default:
		return eris.Errorf("unknown output format %q (want table, json, yaml, or geojson)", format)
	}
}

func printGeoJSON(nodes []languoid.Node) error {
	fc := &geojson.FeatureCollection{}
	for _, n := range nodes {
		if !n.HasPoint() {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       n.ID,
			Geometry: n.Point,
			Properties: map[string]any{
				"name":      n.Name,
				"rank":      n.Rank,
				"parent_id": n.ParentID,
			},
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

// writeShapefile exports the candidates with coordinates as a point layer.
func writeShapefile(path string, nodes []languoid.Node) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer w.Close() //nolint:errcheck

	fields := []shp.Field{
		shp.StringField("GLOTTOCODE", 16),
		shp.StringField("NAME", 80),
		shp.StringField("RANK", 16),
		shp.StringField("PARENT", 16),
	}
	w.SetFields(fields)

	row := 0
	for _, n := range nodes {
		if !n.HasPoint() {
			continue
		}
		w.Write(&shp.Point{X: n.Point.X(), Y: n.Point.Y()})
		w.WriteAttribute(row, 0, n.ID)
		w.WriteAttribute(row, 1, n.Name)
		w.WriteAttribute(row, 2, n.Rank)
		w.WriteAttribute(row, 3, n.ParentID)
		row++
	}
	return nil
}

func init() {
	resolveCmd.Flags().Float64Var(&resolveLon, "lon", 0, "query longitude (WGS84)")
	resolveCmd.Flags().Float64Var(&resolveLat, "lat", 0, "query latitude (WGS84)")
	resolveCmd.Flags().StringVar(&resolveGeoJSON, "geojson", "", "path to a GeoJSON geometry to query with")
	resolveCmd.Flags().Float64Var(&resolveBuffer, "buffer", 50, "search radius in kilometers")
	resolveCmd.Flags().StringVar(&resolveRank, "rank", "all", "rank filter: all, dialect, language, or family")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "table", "output format: table, json, yaml, or geojson")
	resolveCmd.Flags().StringVar(&resolveShp, "shp", "", "also export candidates with coordinates to a shapefile")
	rootCmd.AddCommand(resolveCmd)
}
