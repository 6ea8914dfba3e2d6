// Package cmd implements the command-line interface for virta.
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/virta-dl/virta/media"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// schemaCmd generates the JSON schema of the show-metadata output so that
// consumers of the structured mode can validate what they parse.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the metadata output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "metadata", "flavormetadata", "subtitle":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect([]media.Metadata{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
