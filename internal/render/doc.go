// Package render writes translation outcomes to the terminal or to a
// launcher such as Alfred.
//
// Four formats are supported: styled text, Alfred Script Filter JSON,
// plain JSON and YAML. All of them are built from the same View so that
// every format shows the same lines.
package render
