// Command msimdump disassembles a MIPS R4000 binary: an ELF image (using
// its .text section and byte order) or, failing that, a raw big-endian
// instruction stream. Grounded on awesomeVM/cmd/mips_disassemble/main.go's
// ELF-vs-raw dispatch, rewired onto internal/mips32's own Decode/Disassemble
// instead of that file's standalone bit-field extraction.
package main

import (
	"debug/elf"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/d-iii-s/msim/internal/mips32"
)

func main() {
	regConv := flag.String("regs", "abi", "register naming: numeric|dollar|abi")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("usage: msimdump [-regs=numeric|dollar|abi] <mips_binary_file>")
		os.Exit(1)
	}
	conv := parseRegConvention(*regConv)

	fileName := flag.Arg(0)
	file, err := os.Open(fileName)
	if err != nil {
		log.Fatalf("failed to open file: %v", err)
	}
	defer file.Close()

	if elfFile, err := elf.Open(fileName); err == nil {
		defer elfFile.Close()
		disassembleELF(elfFile, conv)
		return
	}

	fmt.Println("not an ELF file, treating as raw big-endian binary")
	disassembleRaw(file, conv)
}

func parseRegConvention(s string) mips32.RegConvention {
	switch s {
	case "numeric":
		return mips32.RegNumeric
	case "dollar":
		return mips32.RegDollar
	default:
		return mips32.RegABI
	}
}

func disassembleELF(elfFile *elf.File, conv mips32.RegConvention) {
	fmt.Printf("ELF file: %s, entry 0x%08x\n", elfFile.Machine, elfFile.Entry)

	order := binary.ByteOrder(binary.BigEndian)
	if elfFile.ByteOrder == binary.LittleEndian {
		order = binary.LittleEndian
	}
	fmt.Printf("byte order: %v\n\n", elfFile.ByteOrder)

	text := elfFile.Section(".text")
	if text == nil {
		fmt.Println("warning: no .text section found")
		for _, section := range elfFile.Sections {
			if section.Flags&elf.SHF_EXECINSTR != 0 {
				fmt.Printf("disassembling executable section %s\n", section.Name)
				disassembleSection(section, order, conv)
			}
		}
		return
	}

	fmt.Printf("disassembling .text (0x%08x - 0x%08x):\n", text.Addr, text.Addr+text.Size)
	disassembleSection(text, order, conv)
}

func disassembleSection(section *elf.Section, order binary.ByteOrder, conv mips32.RegConvention) {
	data, err := section.Data()
	if err != nil {
		log.Printf("failed to read section %s: %v", section.Name, err)
		return
	}
	addr := section.Addr
	for i := 0; i+4 <= len(data); i += 4 {
		word := order.Uint32(data[i : i+4])
		printInsn(uint32(addr+uint64(i)), word, conv)
	}
}

func disassembleRaw(file *os.File, conv mips32.RegConvention) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		log.Fatalf("failed to seek file: %v", err)
	}
	var offset uint32
	for {
		var word uint32
		if err := binary.Read(file, binary.BigEndian, &word); err != nil {
			break
		}
		printInsn(offset, word, conv)
		offset += 4
	}
}

func printInsn(addr uint32, word uint32, conv mips32.RegConvention) {
	d := mips32.Decode(word)
	fmt.Printf("0x%08x: 0x%08x\t%s\n", addr, word, mips32.Disassemble(d, addr, conv))
}
