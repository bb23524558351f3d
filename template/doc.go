// Package template stores named format strings on disk.
//
// Templates are plain files searched across an ordered list of
// directories, the user's own directory first. Names are paths relative
// to a search directory, so templates can be organized in subdirectories
// (net/scan/nmap-ping). Files ending in ".snippet" in the current working
// directory are also visible, addressed by their file name.
//
// Editing always happens in the user directory: a template found only in
// a lower-priority directory is copied there first, so packaged templates
// are never modified in place.
package template
