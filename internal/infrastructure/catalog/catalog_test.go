package catalog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/application/wave"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/catalog"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <productos>
    <producto sku=" arroz-500 " nombre=" Arroz 500g ">
      <codigo valor="7700000000011"/>
      <codigo valor=" 7700000000028 " principal="true"/>
    </producto>
    <producto sku="" nombre="sin sku"/>
  </productos>
  <ubicaciones>
    <ubicacion codigo="a-01" zona="normal"/>
    <ubicacion codigo="cuarentena-1" zona="QUARANTINE" activa="false"/>
    <ubicacion codigo="mesa" zona=""/>
  </ubicaciones>
  <pedidos>
    <pedido numero=" PED-7 ">
      <linea codigo="7700000000011" cantidad="3"/>
      <linea sku="arroz-500" cantidad="1.5"/>
    </pedido>
  </pedidos>
</catalogo>`

func TestDecode(t *testing.T) {
	c, err := catalog.Decode(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, c.Products, 1)
	p := c.Products[0]
	assert.Equal(t, "ARROZ-500", p.SKU)
	assert.Equal(t, "Arroz 500g", p.Name)
	assert.Equal(t, []string{"7700000000028", "7700000000011"}, p.Barcodes)
	assert.Equal(t, catalog.ProductID("ARROZ-500"), p.ID)

	require.Len(t, c.Locations, 3)
	assert.Equal(t, "A-01", c.Locations[0].Code)
	assert.Equal(t, entity.ZoneNormal, c.Locations[0].Zone)
	assert.True(t, c.Locations[0].Active)
	assert.Equal(t, entity.ZoneQuarantine, c.Locations[1].Zone)
	assert.False(t, c.Locations[1].Active)
	assert.Equal(t, entity.ZoneNormal, c.Locations[2].Zone)
	assert.True(t, c.HasLocation("mesa"))
	assert.False(t, c.HasLocation("STAGING"))

	require.Len(t, c.Orders, 1)
	o := c.Orders[0]
	assert.Equal(t, "PED-7", o.Number)
	assert.Equal(t, catalog.OrderID("PED-7"), o.ID)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "7700000000011", o.Lines[0].Barcode)
	assert.Equal(t, "ARROZ-500", o.Lines[1].SKU)
	assert.True(t, o.Lines[1].Quantity.Equal(decimal.RequireFromString("1.5")))
}

func TestDecode_StableIDs(t *testing.T) {
	a, err := catalog.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	b, err := catalog.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, a.Products[0].ID, b.Products[0].ID)
	assert.Equal(t, a.Locations[0].ID, b.Locations[0].ID)
	assert.Equal(t, a.Orders[0].ID, b.Orders[0].ID)
}

func TestDecode_Latin1(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalogo><productos><producto sku="PAN-1" nombre="Pan de maíz"/></productos></catalogo>`
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	c, err := catalog.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, c.Products, 1)
	assert.Equal(t, "Pan de maíz", c.Products[0].Name)
}

func TestDecode_Rejections(t *testing.T) {
	cases := map[string]string{
		"zona desconocida":  `<catalogo><ubicaciones><ubicacion codigo="X-1" zona="FREEZER"/></ubicaciones></catalogo>`,
		"pedido sin número": `<catalogo><pedidos><pedido><linea codigo="1" cantidad="1"/></pedido></pedidos></catalogo>`,
		"cantidad inválida": `<catalogo><pedidos><pedido numero="P"><linea codigo="1" cantidad="dos"/></pedido></pedidos></catalogo>`,
		"cantidad cero":     `<catalogo><pedidos><pedido numero="P"><linea codigo="1" cantidad="0"/></pedido></pedidos></catalogo>`,
		"xml roto":          `<catalogo><productos>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestSeedInto_MemoryStore(t *testing.T) {
	c, err := catalog.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	store := memory.NewStore()
	c.SeedInto(store)

	ctx := context.Background()
	require.NoError(t, store.Run(ctx, func(r repository.Repos) error {
		ids, err := r.Products.ResolveBarcode(ctx, "7700000000011")
		require.NoError(t, err)
		assert.Equal(t, []string{catalog.ProductID("ARROZ-500")}, ids)

		loc, err := r.Locations.GetByID(ctx, catalog.LocationID("A-01"))
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, "A-01", loc.Code)

		o, err := r.Orders.GetByID(ctx, catalog.OrderID("PED-7"))
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Len(t, o.Lines, 2)
		return nil
	}))
}

func TestSeedInto_WaveFromSeededOrders(t *testing.T) {
	c, err := catalog.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	store := memory.NewStore()
	c.SeedInto(store)
	store.AddLocation(entity.Location{Code: wave.DefaultStagingCode, Zone: entity.ZoneStaging, Active: true})

	ctx := context.Background()
	recorder := inventory.NewRecorder(nil, nil)
	allocator := inventory.NewAllocator(recorder, nil, nil)
	_, err = inventory.NewRegisterMovementUseCase(store, recorder).Receive(ctx, inventory.ReceiptInput{
		ProductID: catalog.ProductID("ARROZ-500"), Batch: "L-1", LocationID: catalog.LocationID("A-01"), Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	uc := wave.NewUseCase(store, allocator, recorder, wave.Options{Logger: zerolog.Nop()})
	created, err := uc.Create(ctx, wave.CreateInput{OrderIDs: []string{catalog.OrderID("PED-7")}, UserID: "jefe"})
	require.NoError(t, err)
	assert.Empty(t, created.Unresolved)
	// La línea por SKU toma el código principal; la otra conserva el suyo.
	require.Len(t, created.Wave.Lines, 2)
	assert.Equal(t, "7700000000011", created.Wave.Lines[0].Barcode)
	assert.Equal(t, "7700000000028", created.Wave.Lines[1].Barcode)
	assert.True(t, created.Wave.Lines[1].TotalQty.Equal(decimal.RequireFromString("1.5")))

	started, err := uc.Start(ctx, created.Wave.ID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, entity.WavePicking, started.Status)
}
