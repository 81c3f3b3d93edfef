// Command pslcheck reports the public suffix, the registrable domain, and
// whether the name is itself a public suffix for a list of hostnames,
// either against a caller-supplied Public Suffix List file or against the
// library's bundled snapshot.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/psltrie/psltrie/pslaccel"
	"github.com/psltrie/psltrie/pslconv"
	"github.com/psltrie/psltrie/publicsuffix"
)

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadList(listPath string, useEmbedded bool) (*publicsuffix.List, error) {
	if useEmbedded {
		return publicsuffix.NewWithEmbeddedList(publicsuffix.WithToASCII(pslconv.ToASCII))
	}
	f, err := os.Open(listPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sb strings.Builder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		sb.WriteString(sc.Text())
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return publicsuffix.Parse(sb.String(), publicsuffix.WithToASCII(pslconv.ToASCII)), nil
}

func main() {
	listPath := flag.String("list", "", "path to a Public Suffix List file (default: use the bundled snapshot)")
	hostsPath := flag.String("hosts", "", "path to a file of hostnames, one per line")
	native := flag.Bool("native", false, "enable the native accelerator if this binary was built with it")
	flag.Parse()

	if *hostsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pslcheck -hosts=hosts.txt [-list=public_suffix_list.dat] [-native]")
		os.Exit(2)
	}

	list, err := loadList(*listPath, *listPath == "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load list:", err)
		os.Exit(1)
	}

	if *native {
		if err := list.EnableAccelerator(pslaccel.Native()); err != nil {
			fmt.Fprintln(os.Stderr, "native accelerator unavailable, using reference engine:", err)
		}
	}
	fmt.Printf("engine: %s\n", list.AcceleratorName())
	fmt.Printf("fingerprint: %016x\n", list.Fingerprint())

	hosts, err := readLines(*hostsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read hosts:", err)
		os.Exit(1)
	}

	var withSuffix int
	start := time.Now()
	for _, h := range hosts {
		suffix := list.PublicSuffix(h)
		reg := list.RegistrableDomain(h)
		isSuffix := list.IsPublicSuffix(h)
		if suffix != "" {
			withSuffix++
		}
		fmt.Printf("%s\tpublic_suffix=%q\tregistrable_domain=%q\tis_public_suffix=%t\n", h, suffix, reg, isSuffix)
	}
	elapsed := time.Since(start)

	fmt.Printf("checked %d hosts, %d had a public suffix (%.1f%%)\n",
		len(hosts), withSuffix, percent(withSuffix, len(hosts)))
	if len(hosts) > 0 {
		fmt.Printf("avg lookup latency: %.0f ns\n", float64(elapsed.Nanoseconds())/float64(len(hosts)))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100.0 / float64(total)
}
