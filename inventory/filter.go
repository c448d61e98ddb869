package inventory

import (
	"strconv"
	"strings"
)

// Filter es el criterio de visibilidad de la tabla. IDSpec admite un
// entero exacto ("7"), un rango cerrado ("3-6") o abierto ("5-", "-10");
// vacío significa sin restricción. Los demás campos son subcadenas sin
// distinción de mayúsculas; un registro es visible solo si cumple todos
// los criterios a la vez.
type Filter struct {
	IDSpec   string `json:"rango_id"`
	Name     string `json:"recurso"`
	Category string `json:"categoria"`
	Note     string `json:"info"`
}

type idSpec struct {
	exact *int
	from  *int
	to    *int
}

func parseIDSpec(raw string) idSpec {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return idSpec{}
	}

	if strings.Contains(raw, "-") {
		parts := strings.SplitN(raw, "-", 2)
		var spec idSpec
		if parts[0] != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
				spec.from = &n
			}
		}
		if parts[1] != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				spec.to = &n
			}
		}
		return spec
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return idSpec{exact: &n}
	}
	return idSpec{}
}

func (s idSpec) matches(id int) bool {
	if s.exact != nil && id != *s.exact {
		return false
	}
	if s.from != nil && id < *s.from {
		return false
	}
	if s.to != nil && id > *s.to {
		return false
	}
	return true
}

// matches indica si el registro pasa el filtro
func (f Filter) matches(spec idSpec, r Record) bool {
	if !spec.matches(r.ID) {
		return false
	}
	return containsFold(r.Name, f.Name) &&
		containsFold(r.Category, f.Category) &&
		containsFold(r.Note, f.Note)
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}
