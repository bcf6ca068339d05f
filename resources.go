// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"fmt"

	"github.com/sassoftware/concept-xtract/logger"
)

// resourceRoot is the object index of the archive root in Resources.plist.
const resourceRoot = 1

// A ResourceMap maps legacy resource ids to file extensions.
type ResourceMap map[string]string

// BuildResourceMap reads the "importedResourceMap" of the resources graph.
// Keys ("NS.keys") and values ("NS.objects" or "NS.values") are paired by
// position; values that are not dictionaries with string "resourceLegacyId"
// and "resourceExtension" fields are skipped. A missing or malformed map
// yields an empty ResourceMap.
func BuildResourceMap(g *Graph) ResourceMap {
	out := ResourceMap{}
	if g.Len() <= resourceRoot {
		logger.Debug("resources: no root object")
		return out
	}
	root := g.Object(resourceRoot)
	if root.Kind() != Dict {
		logger.Debug(fmt.Sprintf("resources: root is %v, not a dictionary", root.Kind()))
		return out
	}
	irm := g.Field(root, "importedResourceMap")
	if irm.Kind() != Dict {
		logger.Debug("resources: importedResourceMap missing")
		return out
	}

	keys := irm.Key("NS.keys")
	vals := arrayElements(irm)
	n := min(keys.Len(), vals.Len())
	for i := 0; i < n; i++ {
		v, err := g.Deref(vals.Index(i))
		if err != nil {
			logger.Debug(fmt.Sprintf("resources: entry %d: %v", i, err))
			continue
		}
		if v.Kind() != Dict {
			continue
		}
		legacy := g.Field(v, "resourceLegacyId")
		ext := g.Field(v, "resourceExtension")
		if legacy.Kind() != String || ext.Kind() != String {
			continue
		}
		out[legacy.Str()] = ext.Str()
	}
	logger.Debug(fmt.Sprintf("resources: entries=%d", len(out)), true)
	return out
}
