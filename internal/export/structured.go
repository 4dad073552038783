package export

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Markers emitted by StructuredText in place of elided content.
const (
	MetadataMarker  = "<metadata elided>"
	CycleMarker     = "<cycle>"
	TruncatedMarker = "...(truncated)"

	maxStringLen = 2000
	maxOutputLen = 20000
)

// StructuredText renders an arbitrarily nested value as indented text for the
// detail pane and file export. Plan and leg payloads can carry back-references
// and oversized blobs, so the walk elides anything under a "metadata" key,
// truncates individual strings past 2000 characters, replaces a second
// encounter of the same reference with a cycle marker, and caps the whole
// output at 20000 characters. It never fails: an internal panic degrades to a
// plain string conversion of the input.
func StructuredText(v any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprint(v)
		}
	}()

	w := &walker{seen: map[uintptr]bool{}}
	var b strings.Builder
	w.write(&b, reflect.ValueOf(v), 0)
	out = strings.TrimRight(b.String(), "\n")
	if len(out) > maxOutputLen {
		out = out[:maxOutputLen] + TruncatedMarker
	}
	return out
}

type walker struct {
	seen map[uintptr]bool
}

// enter marks a reference as visited; false means it was seen before.
func (w *walker) enter(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if v.IsNil() {
			return true
		}
		addr := v.Pointer()
		if w.seen[addr] {
			return false
		}
		w.seen[addr] = true
	}
	return true
}

func indentOf(depth int) string {
	return strings.Repeat("  ", depth)
}

func (w *walker) write(b *strings.Builder, v reflect.Value, depth int) {
	if !v.IsValid() {
		b.WriteString(indentOf(depth))
		b.WriteString("null\n")
		return
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			b.WriteString(indentOf(depth))
			b.WriteString("null\n")
			return
		}
		if !w.enter(v) {
			b.WriteString(indentOf(depth))
			b.WriteString(CycleMarker + "\n")
			return
		}
		w.write(b, v.Elem(), depth)

	case reflect.Map:
		if !w.enter(v) {
			b.WriteString(indentOf(depth))
			b.WriteString(CycleMarker + "\n")
			return
		}
		keys := make([]string, 0, v.Len())
		byKey := map[string]reflect.Value{}
		for _, k := range v.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = v.MapIndex(k)
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			b.WriteString(indentOf(depth))
			b.WriteString("{}\n")
			return
		}
		for _, ks := range keys {
			w.writeField(b, ks, byKey[ks], depth)
		}

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && !w.enter(v) {
			b.WriteString(indentOf(depth))
			b.WriteString(CycleMarker + "\n")
			return
		}
		if v.Len() == 0 {
			b.WriteString(indentOf(depth))
			b.WriteString("[]\n")
			return
		}
		for i := 0; i < v.Len(); i++ {
			b.WriteString(indentOf(depth))
			b.WriteString("-\n")
			w.write(b, v.Index(i), depth+1)
		}

	case reflect.Struct:
		t := v.Type()
		wrote := false
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				if tagName := strings.Split(tag, ",")[0]; tagName == "-" {
					continue
				} else if tagName != "" {
					name = tagName
				}
			}
			w.writeField(b, name, v.Field(i), depth)
			wrote = true
		}
		if !wrote {
			b.WriteString(indentOf(depth))
			b.WriteString(fmt.Sprint(v.Interface()))
			b.WriteByte('\n')
		}

	case reflect.String:
		s := v.String()
		if len(s) > maxStringLen {
			s = s[:maxStringLen] + TruncatedMarker
		}
		b.WriteString(indentOf(depth))
		b.WriteString(s)
		b.WriteByte('\n')

	default:
		b.WriteString(indentOf(depth))
		b.WriteString(fmt.Sprint(v.Interface()))
		b.WriteByte('\n')
	}
}

// writeField emits "key: value" for scalars and "key:" + indented block for
// containers. Values under a key literally named "metadata" are elided.
func (w *walker) writeField(b *strings.Builder, key string, v reflect.Value, depth int) {
	b.WriteString(indentOf(depth))
	b.WriteString(key)
	b.WriteByte(':')

	if key == "metadata" {
		b.WriteByte(' ')
		b.WriteString(MetadataMarker + "\n")
		return
	}

	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if v.Kind() == reflect.Map && v.Len() == 0 {
			b.WriteString(" {}\n")
			return
		}
		if (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && v.Len() == 0 {
			b.WriteString(" []\n")
			return
		}
		b.WriteByte('\n')
		w.write(b, v, depth+1)
	default:
		b.WriteByte(' ')
		inline := &strings.Builder{}
		w.write(inline, v, 0)
		b.WriteString(inline.String())
	}
}
