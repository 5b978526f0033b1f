// seed_catalog genera un script SQL para poblar productos, códigos de barras, ubicaciones y
// pedidos a partir del catálogo XML exportado por el ERP (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml] [salida.sql]
// Por defecto lee catalogo.xml del directorio actual y escribe seed_catalog.sql en la raíz del módulo.
//
// Los ids se derivan del SKU, del código de ubicación y del número de pedido, así que correr el
// script dos veces no duplica filas. Con STORE=memory el mismo archivo se carga vía WMS_SEED_FILE.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/catalog"
)

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	c, err := catalog.Load(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	n := writeSeed(out, c)
	fmt.Printf("Generado %s: %d productos, %d códigos, %d ubicaciones, %d pedidos\n", outPath, n.products, n.codes, n.locations, n.orders)
}

type counts struct {
	products, codes, locations, orders int
}

func writeSeed(out io.Writer, c *catalog.Catalog) counts {
	var n counts
	fmt.Fprintln(out, "-- Catálogo maestro del almacén (generado por cmd/seed_catalog)")
	fmt.Fprintln(out, "BEGIN;")

	prods := append([]entity.Product(nil), c.Products...)
	sort.Slice(prods, func(i, j int) bool { return prods[i].SKU < prods[j].SKU })

	fmt.Fprintln(out, "\n-- 1. Productos y códigos de barras")
	for _, p := range prods {
		fmt.Fprintf(out, "INSERT INTO products (id, sku, name) VALUES ('%s', '%s', '%s')\n", p.ID, escapeSQL(p.SKU), escapeSQL(p.Name))
		fmt.Fprintln(out, "ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name;")
		n.products++
		for i, code := range p.Barcodes {
			fmt.Fprintf(out, "INSERT INTO product_barcodes (barcode, product_id, is_primary)\n")
			fmt.Fprintf(out, "SELECT '%s', id, %t FROM products WHERE sku = '%s'\n", escapeSQL(code), i == 0, escapeSQL(p.SKU))
			fmt.Fprintln(out, "ON CONFLICT (barcode, product_id) DO UPDATE SET is_primary = EXCLUDED.is_primary;")
			n.codes++
		}
	}

	fmt.Fprintln(out, "\n-- 2. Ubicaciones")
	for _, l := range c.Locations {
		fmt.Fprintf(out, "INSERT INTO locations (id, code, zone, active) VALUES ('%s', '%s', '%s', %t)\n", l.ID, escapeSQL(l.Code), l.Zone, l.Active)
		fmt.Fprintln(out, "ON CONFLICT (code) DO UPDATE SET zone = EXCLUDED.zone, active = EXCLUDED.active;")
		n.locations++
	}

	if len(c.Orders) > 0 {
		fmt.Fprintln(out, "\n-- 3. Pedidos")
	}
	for _, o := range c.Orders {
		fmt.Fprintf(out, "INSERT INTO orders (id, number) VALUES ('%s', '%s') ON CONFLICT (id) DO NOTHING;\n", o.ID, escapeSQL(o.Number))
		for i, l := range o.Lines {
			fmt.Fprintf(out, "INSERT INTO order_lines (order_id, line_no, barcode, sku, quantity) VALUES ('%s', %d, '%s', '%s', %s)\n",
				o.ID, i+1, escapeSQL(l.Barcode), escapeSQL(l.SKU), l.Quantity.String())
			fmt.Fprintln(out, "ON CONFLICT (order_id, line_no) DO NOTHING;")
		}
		n.orders++
	}

	fmt.Fprintln(out, "\nCOMMIT;")
	return n
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
