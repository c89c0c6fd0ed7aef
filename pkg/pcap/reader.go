package pcap

import (
	"fmt"

	"SessionSpectra/internal/model"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// Reader reads packets from a pcap file.
type Reader struct {
	handle *pcap.Handle
}

// NewReader creates a new pcap reader for the given file path.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadPackets reads all packets from the pcap file and sends the metadata
// relevant to session tracking to the provided channel. Packets that are
// not IPv4 TCP are skipped. It closes the channel when done.
func (r *Reader) ReadPackets(out chan<- *model.PacketInfo) {
	defer close(out)

	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		info, err := ParsePacket(packet)
		if err != nil {
			// Non-TCP traffic carries no session semantics here.
			continue
		}
		out <- info
	}
}

// ParsePacket extracts the capture timestamp and a flow key from an IPv4
// TCP packet.
func ParsePacket(packet gopacket.Packet) (*model.PacketInfo, error) {
	info := &model.PacketInfo{}
	if meta := packet.Metadata(); meta != nil {
		info.Timestamp = meta.Timestamp
	}

	ipLayer, ok := packet.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return nil, fmt.Errorf("not an IPv4 packet")
	}

	tcpLayer, ok := packet.Layer(layers.LayerTypeTCP).(*layers.TCP)
	if !ok {
		return nil, fmt.Errorf("not a TCP packet")
	}

	info.FlowKey = fmt.Sprintf("%s:%d->%s:%d/tcp",
		ipLayer.SrcIP, tcpLayer.SrcPort, ipLayer.DstIP, tcpLayer.DstPort)

	return info, nil
}
