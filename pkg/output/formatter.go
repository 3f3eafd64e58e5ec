// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output turns classified change records into the action's named
// result values and reports them to the hosting workflow.
package output

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cicd-ai-toolkit/changed-files/pkg/change"
	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
)

// Format selects how file lists are encoded in output values.
type Format string

const (
	FormatSpaceDelimited Format = "space-delimited"
	FormatCSV            Format = "csv"
	FormatJSON           Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSpaceDelimited, FormatCSV, FormatJSON:
		return Format(s), nil
	default:
		return "", errors.ValidationError(fmt.Sprintf("format must be one of space-delimited, csv or json, got %q", s), nil)
	}
}

// ChangeSet buckets changed files by classification.
type ChangeSet struct {
	All           []string
	Added         []string
	Modified      []string
	Removed       []string
	Renamed       []string
	AddedModified []string
}

// Collect buckets records into a ChangeSet, applying the extension filter.
// An empty filter list, or a list containing the empty string, keeps every
// file. Extensions match literally, leading dot included, case-sensitive.
func Collect(records []change.Record, extensions []string) *ChangeSet {
	set := &ChangeSet{}

	for _, rec := range records {
		if !matchExtension(rec.Name, extensions) {
			continue
		}

		set.All = append(set.All, rec.Name)

		switch rec.Status {
		case change.StatusAdded:
			set.Added = append(set.Added, rec.Name)
			set.AddedModified = append(set.AddedModified, rec.Name)
		case change.StatusModified:
			set.Modified = append(set.Modified, rec.Name)
			set.AddedModified = append(set.AddedModified, rec.Name)
		case change.StatusRemoved:
			set.Removed = append(set.Removed, rec.Name)
		case change.StatusRenamed:
			set.Renamed = append(set.Renamed, rec.Name)
		}
	}

	return set
}

func matchExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	ext := filepath.Ext(name)
	for _, e := range extensions {
		// An empty filter entry disables filtering entirely.
		if e == "" || e == ext {
			return true
		}
	}
	return false
}

// Value is a named result value ready to be set as a workflow output.
type Value struct {
	Name  string
	Value string
}

// Values encodes every bucket with the given format, in a stable order.
// The legacy deleted output mirrors removed.
func (s *ChangeSet) Values(f Format) ([]Value, error) {
	buckets := []struct {
		name  string
		files []string
	}{
		{"all", s.All},
		{"added", s.Added},
		{"modified", s.Modified},
		{"removed", s.Removed},
		{"renamed", s.Renamed},
		{"added_modified", s.AddedModified},
		{"deleted", s.Removed},
	}

	values := make([]Value, 0, len(buckets))
	for _, b := range buckets {
		encoded, err := encode(b.files, f)
		if err != nil {
			return nil, err
		}
		values = append(values, Value{Name: b.name, Value: encoded})
	}
	return values, nil
}

func encode(files []string, f Format) (string, error) {
	switch f {
	case FormatSpaceDelimited:
		for _, name := range files {
			if strings.Contains(name, " ") {
				return "", errors.ValidationError(fmt.Sprintf("filename %q contains a space, use csv or json format", name), nil)
			}
		}
		return strings.Join(files, " "), nil
	case FormatCSV:
		return strings.Join(files, ","), nil
	case FormatJSON:
		if files == nil {
			files = []string{}
		}
		data, err := json.Marshal(files)
		if err != nil {
			return "", errors.ValidationError("failed to encode file list as JSON", err)
		}
		return string(data), nil
	default:
		return "", errors.ValidationError(fmt.Sprintf("unknown output format %q", f), nil)
	}
}
