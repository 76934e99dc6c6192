package ee

import "strings"

// publicProject hosts the public data catalog.
const publicProject = "earthengine-public"

// NormalizeAsset expands a catalog reference like "COPERNICUS/S2_SR" into a full
// resource name. References already rooted under projects/ are returned as is.
func NormalizeAsset(ref string) string {
	ref = strings.Trim(ref, "/")
	if strings.HasPrefix(ref, "projects/") {
		return ref
	}
	return "projects/" + publicProject + "/assets/" + ref
}

// projectParent returns the resource name of a cloud project.
func projectParent(project string) string {
	if strings.HasPrefix(project, "projects/") {
		return project
	}
	return "projects/" + project
}
