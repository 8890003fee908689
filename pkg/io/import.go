package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/giftring/pkg/assign"
	"github.com/matzehuels/giftring/pkg/errors"
)

// Format is a request file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported file extension %q (want .toml or .json)", filepath.Ext(path))
}

// Request is one generation request.
type Request struct {
	Participants []string            `json:"participants" toml:"participants"`
	Shape        assign.ShapeSpec    `json:"shape" toml:"shape"`
	Banned       []assign.Constraint `json:"banned,omitempty" toml:"banned,omitempty"`
	Forced       []assign.Constraint `json:"forced,omitempty" toml:"forced,omitempty"`
	Seed         uint64              `json:"seed,omitempty" toml:"seed,omitempty"`
	Attempts     int                 `json:"attempts,omitempty" toml:"attempts,omitempty"`
	Workers      int                 `json:"workers,omitempty" toml:"workers,omitempty"`
}

// Validate checks participant names and the shape selector. Constraint
// contents are left to the generator, which reports them as results.
func (r Request) Validate() error {
	if err := errors.ValidateParticipants(r.Participants); err != nil {
		return err
	}
	if _, err := r.Shape.Shape(); err != nil {
		return err
	}
	if r.Attempts < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "attempts cannot be negative, got %d", r.Attempts)
	}
	if r.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers cannot be negative, got %d", r.Workers)
	}
	return nil
}

// Options returns the generator options carried by the request.
func (r Request) Options() assign.Options {
	return assign.Options{Attempts: r.Attempts, Seed: r.Seed, Workers: r.Workers}
}

// DecodeRequest decodes a request from r and validates it.
func DecodeRequest(r io.Reader, format Format) (Request, error) {
	var req Request
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return Request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json request")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&req)
		if err != nil {
			return Request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml request")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Request{}, errors.New(errors.ErrCodeInvalidFormat, "unknown request key %q", undecoded[0].String())
		}
	default:
		return Request{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported request format %q", format)
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ReadRequest reads and validates the request file at path.
func ReadRequest(path string) (Request, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Request{}, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return Request{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Request{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "request file %s not found", path)
	}
	if err != nil {
		return Request{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeRequest(f, format)
}

// Assignment is an existing set of pairings over named participants.
type Assignment struct {
	Participants []string         `json:"participants"`
	Pairings     []assign.Pairing `json:"pairings"`
}

// ReadAssignment decodes an assignment from JSON. When participants are
// omitted they are taken from the givers in pairing order.
func ReadAssignment(r io.Reader) (Assignment, error) {
	var a Assignment
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Assignment{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode assignment")
	}
	if len(a.Participants) == 0 {
		for _, p := range a.Pairings {
			a.Participants = append(a.Participants, p.From)
		}
	}
	if err := errors.ValidateParticipants(a.Participants); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// ReadAssignmentFile reads an assignment from the JSON file at path.
func ReadAssignmentFile(path string) (Assignment, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Assignment{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Assignment{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "assignment file %s not found", path)
	}
	if err != nil {
		return Assignment{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAssignment(f)
}
