// seed genera un script SQL para poblar los catálogos base (depósitos y
// productos) a partir de archivos CSV exportados del sistema anterior,
// codificados en ISO-8859-1 y separados por punto y coma.
//
// Uso: go run ./cmd/seed [depositos.csv] [productos.csv]
// Por defecto busca depositos.csv y productos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/seed_catalogo.sql
//
// depositos.csv: nombre;tipo;ciudad       (tipo: primario | secundario)
// productos.csv: nombre;peso_gramos
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	depotsPath := "depositos.csv"
	productsPath := "productos.csv"
	if len(os.Args) > 1 {
		depotsPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		productsPath = os.Args[2]
	}

	depots, err := readCSV(depotsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer depósitos: %v\n", err)
		os.Exit(1)
	}
	products, err := readCSV(productsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer productos: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seed_catalogo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo base: depósitos y productos\n")
	out.WriteString("-- Generado desde depositos.csv y productos.csv\n\n")

	out.WriteString("-- 1. Depósitos\n")
	var nDepots int
	for _, rec := range depots {
		if len(rec) < 2 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		tipo := strings.ToLower(strings.TrimSpace(rec[1]))
		city := ""
		if len(rec) > 2 {
			city = strings.TrimSpace(rec[2])
		}
		if name == "" || (tipo != "primario" && tipo != "secundario") {
			continue
		}
		fmt.Fprintf(out, "INSERT INTO depots (id, name, type, city) VALUES (gen_random_uuid(), '%s', '%s', '%s');\n",
			escapeSQL(name), tipo, escapeSQL(city))
		nDepots++
	}

	out.WriteString("\n-- 2. Productos\n")
	var nProducts int
	for _, rec := range products {
		if len(rec) < 2 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		weight, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil || name == "" || weight.IsNegative() {
			continue
		}
		fmt.Fprintf(out, "INSERT INTO products (id, name, unit_weight_grams) VALUES (gen_random_uuid(), '%s', %s);\n",
			escapeSQL(name), weight.StringFixed(2))
		nProducts++
	}

	fmt.Printf("Generado %s: %d depósitos, %d productos\n", outPath, nDepots, nProducts)
}

// readCSV lee un CSV ISO-8859-1 separado por punto y coma, sin cabecera.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
