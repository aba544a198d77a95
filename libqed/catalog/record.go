package catalog

import (
	proto "github.com/gogo/protobuf/proto"
)

// CatalogState is stored under the catalog state key and holds the per-class graph counts.
type CatalogState struct {
	MajorVers int32         `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers int32         `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	Classes   []*ClassCount `protobuf:"bytes,3,rep,name=classes,proto3" json:"classes,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// ClassCount is the number of graphs added for a GraphClass.
type ClassCount struct {
	Loops       uint32 `protobuf:"varint,1,opt,name=loops,proto3" json:"loops,omitempty"`
	FermionLegs uint32 `protobuf:"varint,2,opt,name=fermion_legs,json=fermionLegs,proto3" json:"fermion_legs,omitempty"`
	BosonLegs   uint32 `protobuf:"varint,3,opt,name=boson_legs,json=bosonLegs,proto3" json:"boson_legs,omitempty"`
	NumGraphs   int64  `protobuf:"varint,4,opt,name=num_graphs,json=numGraphs,proto3" json:"num_graphs,omitempty"`
}

func (m *ClassCount) Reset()         { *m = ClassCount{} }
func (m *ClassCount) String() string { return proto.CompactTextString(m) }
func (*ClassCount) ProtoMessage()    {}

// GraphRecord is the value stored with each catalog graph; the canonic key itself is part of the db key.
type GraphRecord struct {
	SeqNum int64  `protobuf:"varint,1,opt,name=seq_num,json=seqNum,proto3" json:"seq_num,omitempty"` // 1-based order of addition within the class
	Expr   string `protobuf:"bytes,2,opt,name=expr,proto3" json:"expr,omitempty"`
}

func (m *GraphRecord) Reset()         { *m = GraphRecord{} }
func (m *GraphRecord) String() string { return proto.CompactTextString(m) }
func (*GraphRecord) ProtoMessage()    {}
