/*
Copyright © 2026 the smartmet-shapetools authors.
This file is part of smartmet-shapetools.

smartmet-shapetools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

smartmet-shapetools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with smartmet-shapetools.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package toolutil wires the vector map conversion flows into a
// command-line interface.
package toolutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the version of this set of tools.
const Version = "2.0.0"

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the tools.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables progress reporting.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "arealimit",
			usage: `
              arealimit drops every polygon whose spherical area in
              square kilometers is below the given limit. Zero keeps
              all polygons.`,
			defaultVal: 0.0,
			flagsets: []*pflag.FlagSet{
				triangulateCmd.Flags(), shapeCmd.Flags(), amalgamateCmd.Flags(),
			},
		},
		{
			name: "lengthlimit",
			usage: `
              lengthlimit drops every triangle outside the marked
              regions that has an edge longer than the given
              great-circle distance in kilometers.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{amalgamateCmd.Flags()},
		},
		{
			name: "projection",
			usage: `
              projection is the proj4 specification translating
              longitude and latitude to plane coordinates.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{pointsCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance is the required minimum distance between chosen
              points in projected plane units.`,
			shorthand:  "d",
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{pointsCmd.Flags()},
		},
		{
			name: "borderdistance",
			usage: `
              borderdistance is the required minimum distance from the
              edges of the projected data extent.`,
			shorthand:  "D",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{pointsCmd.Flags()},
		},
		{
			name: "field",
			usage: `
              field names the numeric attribute used for ranking the
              points.`,
			shorthand:  "f",
			defaultVal: "TYPE",
			flagsets:   []*pflag.FlagSet{pointsCmd.Flags()},
		},
		{
			name: "negate",
			usage: `
              negate inverts the ranking so the lowest field values
              are kept first.`,
			shorthand:  "n",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{pointsCmd.Flags()},
		},
	}
}

func init() {
	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SHAPETOOLS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(triangulateCmd)
	Root.AddCommand(shapeCmd)
	Root.AddCommand(amalgamateCmd)
	Root.AddCommand(pointsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("shapetools: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "shapetools",
	Short: "Converters for geographic vector data.",
	Long: `shapetools converts geographic vector data between ESRI shapefiles
and the PSLG text interchange format used by Delaunay triangulation
tools, amalgamates triangulated meshes, and thins dense point sets.

Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag) or by using
command-line arguments.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of shapetools.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shapetools v%s\n", Version)
	},
	DisableAutoGenTag: true,
}

// triangulateCmd exports a polygon shapefile as PSLG input for an
// external Delaunay triangulator.
var triangulateCmd = &cobra.Command{
	Use:   "triangulate [input shapefile] [output name]",
	Short: "Convert a polygon shapefile to PSLG files",
	Long: `triangulate reads the polygons of the input shapefile, drops the ones
smaller than --arealimit, and writes [output name].node and
[output name].poly for use with an external Delaunay triangulator.
Each polygon gets one interior marker point in the regions section so
the resulting triangles can be traced back to their polygon.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Triangulate(args[0], args[1], Cfg.GetFloat64("arealimit"))
	},
	DisableAutoGenTag: true,
}

// shapeCmd rebuilds a polygon shapefile from PSLG files.
var shapeCmd = &cobra.Command{
	Use:   "shape [input name] [output shapefile]",
	Short: "Convert PSLG files to a polygon shapefile",
	Long: `shape reads [input name].node and [input name].poly, connects the
segments into closed polygons, drops the ones smaller than
--arealimit, and writes them as a polygon shapefile.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Shape(args[0], args[1], Cfg.GetFloat64("arealimit"))
	},
	DisableAutoGenTag: true,
}

// amalgamateCmd merges the triangles of a triangulated mesh back into
// larger polygons.
var amalgamateCmd = &cobra.Command{
	Use:   "amalgamate [input name] [output name]",
	Short: "Amalgamate a triangulated mesh into polygons",
	Long: `amalgamate reads [input name].node, [input name].poly and
[input name].ele, drops unmarked triangles with edges longer than
--lengthlimit, merges the remaining triangles, drops merged polygons
smaller than --arealimit, and writes a fresh pair of
[output name].node and [output name].poly files. A new .ele file can
be created from them with an external triangulator when needed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Amalgamate(args[0], args[1],
			Cfg.GetFloat64("lengthlimit"), Cfg.GetFloat64("arealimit"))
	},
	DisableAutoGenTag: true,
}

// pointsCmd thins a point shapefile to evenly spaced points.
var pointsCmd = &cobra.Command{
	Use:   "points [input shapefile] [output shapefile]",
	Short: "Choose evenly spaced points from a point shapefile",
	Long: `points projects every point of the input shapefile with the
--projection specification, ranks the points by the numeric --field
attribute, keeps the highest ranked point of every --distance sized
neighborhood, and writes the survivors to the output shapefile.

Typical usage:

  shapetools points -p "+proj=merc +lon_0=25" -d 20000 -f POPULATION \
      places.shp chosen.shp`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return SelectPoints(args[0], args[1], &SelectPointsConfig{
			Projection:     Cfg.GetString("projection"),
			Field:          Cfg.GetString("field"),
			MinDistance:    Cfg.GetFloat64("distance"),
			BorderDistance: Cfg.GetFloat64("borderdistance"),
			Negate:         Cfg.GetBool("negate"),
		})
	},
	DisableAutoGenTag: true,
}
