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

package toolutil

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	goshp "github.com/jonas-p/go-shp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	shapetools "github.com/fmidev/smartmet-shapetools"
)

// longLatProj is the proj4 specification of unprojected longitude and
// latitude coordinates.
const longLatProj = "+proj=longlat +datum=WGS84 +no_defs"

// SelectPointsConfig holds the settings of the points command.
type SelectPointsConfig struct {
	// Projection is the proj4 specification translating longitude and
	// latitude to the plane the distances are measured in.
	Projection string

	// Field names the numeric attribute the points are ranked by.
	Field string

	// MinDistance is the required minimum distance between chosen
	// points in projected plane units.
	MinDistance float64

	// BorderDistance is the required minimum distance from the edges
	// of the projected data extent.
	BorderDistance float64

	// Negate inverts the ranking so the lowest field values win.
	Negate bool
}

// pointRecord is one row of the input point shapefile.
type pointRecord struct {
	lon, lat float64
	value    float64
}

// SelectPoints chooses evenly spaced points from the input point
// shapefile and writes them to the output shapefile.
func SelectPoints(input, output string, config *SelectPointsConfig) error {
	if config.Projection == "" {
		return fmt.Errorf("shapetools: the points command requires a projection")
	}
	longLat, err := proj.Parse(longLatProj)
	if err != nil {
		return err
	}
	planeSR, err := proj.Parse(config.Projection)
	if err != nil {
		return fmt.Errorf("shapetools: parsing projection %q: %v", config.Projection, err)
	}
	toPlane, err := longLat.NewTransform(planeSR)
	if err != nil {
		return err
	}

	records, err := readPointRecords(input, config.Field)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("shapetools: %s contains no points", input)
	}

	bounds, err := projectedBounds(records, toPlane, config.BorderDistance)
	if err != nil {
		return err
	}
	selector := shapetools.NewPointSelector(toPlane, bounds, config.Negate)
	if err := selector.MinDistance(config.MinDistance); err != nil {
		return err
	}
	for i, rec := range records {
		if _, err := selector.Add(i, rec.value, rec.lon, rec.lat); err != nil {
			return err
		}
	}

	chosen := selector.IDs()
	logrus.WithFields(logrus.Fields{
		"points": len(records),
		"chosen": len(chosen),
	}).Debug("selected points")
	return writePointShapefile(output, config.Field, records, chosen)
}

// readPointRecords reads the coordinates and the ranking attribute of
// every point in the shapefile.
func readPointRecords(input, field string) ([]pointRecord, error) {
	d, err := shp.NewDecoder(input)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	var records []pointRecord
	for {
		g, fields, more := d.DecodeRowFields(field)
		if !more {
			break
		}
		pt, ok := g.(geom.Point)
		if !ok {
			return nil, fmt.Errorf("shapetools: unsupported geometry type %T; expected points", g)
		}
		attr, ok := fields[field]
		if !ok {
			return nil, fmt.Errorf("shapetools: %s is missing attribute column %s", input, field)
		}
		value, err := cast.ToFloat64E(attr)
		if err != nil {
			return nil, fmt.Errorf("shapetools: attribute %s of point %d is not a number: %v",
				field, len(records)+1, err)
		}
		records = append(records, pointRecord{lon: pt.X, lat: pt.Y, value: value})
	}
	if err := d.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// projectedBounds returns the extent of the projected points, shrunk
// on every side by the border distance.
func projectedBounds(records []pointRecord, toPlane proj.Transformer, border float64) (*geom.Bounds, error) {
	bounds := geom.NewBounds()
	for _, rec := range records {
		x, y, err := toPlane(rec.lon, rec.lat)
		if err != nil {
			return nil, err
		}
		bounds.Extend(geom.NewBoundsPoint(geom.Point{X: x, Y: y}))
	}
	bounds.Min.X += border
	bounds.Min.Y += border
	bounds.Max.X -= border
	bounds.Max.Y -= border
	if bounds.Empty() {
		return nil, fmt.Errorf("shapetools: the border distance %g leaves no area to choose points from", border)
	}
	return bounds, nil
}

// writePointShapefile writes the chosen records to a point shapefile,
// keeping the ranking attribute.
func writePointShapefile(output, field string, records []pointRecord, chosen []int) error {
	e, err := shp.NewEncoderFromFields(output, goshp.POINT,
		goshp.FloatField(field, 20, 6))
	if err != nil {
		return err
	}
	defer e.Close()
	for _, id := range chosen {
		rec := records[id]
		if err := e.EncodeFields(geom.Point{X: rec.lon, Y: rec.lat}, rec.value); err != nil {
			return err
		}
	}
	return nil
}
