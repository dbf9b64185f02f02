package header

import (
	"strings"
	"testing"
)

const sampleDbXml = `<?xml version="1.0"?>
<nes20db>
  <game>
    <rom crc32="deadbeef" sha1="0000000000000000000000000000000000000000"/>
    <pcb mapper="4" submapper="1"/>
    <prgram size="0"/>
    <prgnvram size="8192"/>
    <chrram size="0"/>
    <chrnvram size="0"/>
  </game>
</nes20db>`

func TestLoadDbFrom_IndexesByCrc32(t *testing.T) {
	db, err := loadDbFrom(strings.NewReader(sampleDbXml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := db.Lookup(0xdeadbeef)
	if !ok {
		t.Fatal("expected a DB entry for crc32 0xdeadbeef")
	}
	if g.Pcb.Submapper != 1 {
		t.Fatalf("expected submapper 1, got %d", g.Pcb.Submapper)
	}
}

func TestDbGame_ToSourceOmitsZeroSizedRamFields(t *testing.T) {
	db, _ := loadDbFrom(strings.NewReader(sampleDbXml))
	g, _ := db.Lookup(0xdeadbeef)
	src := g.ToSource()
	if src.prgSaveRamSize == nil || *src.prgSaveRamSize != 8192 {
		t.Fatalf("expected prgnvram size 8192, got %v", src.prgSaveRamSize)
	}
	if src.prgWorkRamSize != nil {
		t.Fatal("expected a zero-sized prgram element to leave prgWorkRamSize nil")
	}
}

func TestMetadataResolver_DbLayerWinsOverComputedDefault(t *testing.T) {
	raw := makeHeader(1, 0, 0x00, 0x00, 0, 0, 0, 0)
	h, _ := Parse(raw)
	db, _ := loadDbFrom(strings.NewReader(sampleDbXml))
	g, _ := db.Lookup(0xdeadbeef)

	m := NewMetadataResolver(h).WithDb(g).Resolve()
	if m.PrgSaveRamSize != 8192 {
		t.Fatalf("expected DB-supplied PRG save RAM size 8192, got %d", m.PrgSaveRamSize)
	}
}
