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

import "testing"

func TestDefaults(t *testing.T) {
	if d := Cfg.GetFloat64("distance"); d != 10 {
		t.Errorf("want default distance 10 but have %v", d)
	}
	if f := Cfg.GetString("field"); f != "TYPE" {
		t.Errorf("want default field TYPE but have %q", f)
	}
	if Cfg.GetBool("negate") {
		t.Error("negate should default to false")
	}
	for _, limit := range []string{"arealimit", "lengthlimit", "borderdistance"} {
		if v := Cfg.GetFloat64(limit); v != 0 {
			t.Errorf("want default %s 0 but have %v", limit, v)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"version": false, "triangulate": false, "shape": false,
		"amalgamate": false, "points": false,
	}
	for _, cmd := range Root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s is not registered", name)
		}
	}
}
