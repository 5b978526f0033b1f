// Package catalog lee el catálogo XML exportado por el ERP (UTF-8 o ISO-8859-1) y lo convierte
// en productos, ubicaciones y pedidos del dominio. Lo usan cmd/seed_catalog para generar SQL y
// el arranque con STORE=memory para poblar el almacén en memoria.
//
// Los ids se derivan del SKU, del código de ubicación y del número de pedido: cargar el mismo
// catálogo dos veces produce los mismos ids.
package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/pkg/barcode"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type document struct {
	Productos   []producto  `xml:"productos>producto"`
	Ubicaciones []ubicacion `xml:"ubicaciones>ubicacion"`
	Pedidos     []pedido    `xml:"pedidos>pedido"`
}

type producto struct {
	SKU     string   `xml:"sku,attr"`
	Nombre  string   `xml:"nombre,attr"`
	Codigos []codigo `xml:"codigo"`
}

type codigo struct {
	Valor     string `xml:"valor,attr"`
	Principal bool   `xml:"principal,attr"`
}

type ubicacion struct {
	Codigo string `xml:"codigo,attr"`
	Zona   string `xml:"zona,attr"`
	Activa *bool  `xml:"activa,attr"`
}

type pedido struct {
	Numero string  `xml:"numero,attr"`
	Lineas []linea `xml:"linea"`
}

type linea struct {
	Codigo   string `xml:"codigo,attr"`
	SKU      string `xml:"sku,attr"`
	Cantidad string `xml:"cantidad,attr"`
}

// Catalog contenido normalizado. Products[i].Barcodes[0] es el código principal.
type Catalog struct {
	Products  []entity.Product
	Locations []entity.Location
	Orders    []entity.Order
}

// Seeder destino de la carga; *memory.Store lo implementa.
type Seeder interface {
	AddProduct(p entity.Product) *entity.Product
	AddLocation(l entity.Location) *entity.Location
	AddOrder(o entity.Order) *entity.Order
}

// Load abre y decodifica el archivo.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode lee el XML y normaliza SKU, códigos de barras, zonas y cantidades.
func Decode(r io.Reader) (*Catalog, error) {
	var doc document
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}

	var c Catalog
	for _, p := range doc.Productos {
		sku := barcode.NormalizeSKU(p.SKU)
		if sku == "" {
			continue
		}
		c.Products = append(c.Products, entity.Product{
			ID:       ProductID(sku),
			SKU:      sku,
			Name:     strings.TrimSpace(p.Nombre),
			Barcodes: primaryFirst(p.Codigos),
		})
	}
	for _, u := range doc.Ubicaciones {
		code := strings.ToUpper(strings.TrimSpace(u.Codigo))
		if code == "" {
			continue
		}
		zone := entity.ZoneType(strings.ToUpper(strings.TrimSpace(u.Zona)))
		if zone == "" {
			zone = entity.ZoneNormal
		}
		if !zone.Valid() {
			return nil, fmt.Errorf("ubicación %s: zona desconocida %q", code, u.Zona)
		}
		c.Locations = append(c.Locations, entity.Location{
			ID:     LocationID(code),
			Code:   code,
			Zone:   zone,
			Active: u.Activa == nil || *u.Activa,
		})
	}
	for _, p := range doc.Pedidos {
		number := strings.TrimSpace(p.Numero)
		if number == "" {
			return nil, fmt.Errorf("pedido sin número")
		}
		o := entity.Order{ID: OrderID(number), Number: number}
		for i, l := range p.Lineas {
			qty, err := decimal.NewFromString(strings.TrimSpace(l.Cantidad))
			if err != nil {
				return nil, fmt.Errorf("pedido %s línea %d: cantidad %q: %w", number, i+1, l.Cantidad, err)
			}
			if err := ledger.ValidateQuantity(qty); err != nil {
				return nil, fmt.Errorf("pedido %s línea %d: %w", number, i+1, err)
			}
			o.Lines = append(o.Lines, entity.OrderLine{
				Barcode:  barcode.Normalize(l.Codigo),
				SKU:      barcode.NormalizeSKU(l.SKU),
				Quantity: qty,
			})
		}
		c.Orders = append(c.Orders, o)
	}
	return &c, nil
}

// SeedInto registra todo el catálogo en s.
func (c *Catalog) SeedInto(s Seeder) {
	for _, p := range c.Products {
		s.AddProduct(p)
	}
	for _, l := range c.Locations {
		s.AddLocation(l)
	}
	for _, o := range c.Orders {
		s.AddOrder(o)
	}
}

// HasLocation indica si el catálogo define la ubicación code.
func (c *Catalog) HasLocation(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, l := range c.Locations {
		if l.Code == code {
			return true
		}
	}
	return false
}

// ProductID id estable de un SKU normalizado.
func ProductID(sku string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("product:"+sku)).String()
}

// LocationID id estable de un código de ubicación.
func LocationID(code string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("location:"+code)).String()
}

// OrderID id estable de un número de pedido.
func OrderID(number string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("order:"+number)).String()
}

// primaryFirst normaliza los códigos y deja primero el marcado como principal (o el primero).
func primaryFirst(codes []codigo) []string {
	var out []string
	for _, c := range codes {
		code := barcode.Normalize(c.Valor)
		if code == "" {
			continue
		}
		if c.Principal {
			out = append([]string{code}, out...)
			continue
		}
		out = append(out, code)
	}
	return out
}
