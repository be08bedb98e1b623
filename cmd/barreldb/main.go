// Command barreldb is a playground CLI for exercising a BarrelDB data
// directory: get, set, delete, and scan against --dir.
//
// Usage:
//
//	barreldb set --dir=/path/to/data <key> <value>
//	barreldb get --dir=/path/to/data <key>
//	barreldb delete --dir=/path/to/data <key>
//	barreldb scan --dir=/path/to/data [--prefix=p] [--reverse]
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/barreldb/barreldb"
	"github.com/barreldb/barreldb/pkg/options"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Println(usage())
		return nil
	}

	switch args[0] {
	case "set":
		return cmdSet(args[1:])
	case "get":
		return cmdGet(args[1:])
	case "delete", "rm":
		return cmdDelete(args[1:])
	case "scan":
		return cmdScan(args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage())
		return nil
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage())
	}
}

func usage() string {
	return `barreldb playground CLI

Commands:
  set --dir=DIR [--sync] <key> <value>    Write key/value
  get --dir=DIR <key>                     Read a key
  delete, rm --dir=DIR <key>               Remove a key
  scan --dir=DIR [--prefix=p] [--reverse]  Walk the keyspace`
}

func openDB(fs *flag.FlagSet) (*barreldb.DB, error) {
	dir, err := fs.GetString("dir")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, fmt.Errorf("--dir is required")
	}

	opts := []options.OptionFunc{options.WithDirPath(dir)}
	if sync, _ := fs.GetBool("sync"); sync {
		opts = append(opts, options.WithSyncWrite(true))
	}

	return barreldb.Open(opts...)
}

func cmdSet(args []string) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fs.String("dir", "", "data directory")
	fs.Bool("sync", false, "fsync after this write")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: barreldb set --dir=DIR <key> <value>")
	}

	db, err := openDB(fs)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Set([]byte(rest[0]), []byte(rest[1])); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

func cmdGet(args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.String("dir", "", "data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: barreldb get --dir=DIR <key>")
	}

	db, err := openDB(fs)
	if err != nil {
		return err
	}
	defer db.Close()

	value, err := db.Get([]byte(rest[0]))
	if err != nil {
		return err
	}
	fmt.Println(string(value))
	return nil
}

func cmdDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.String("dir", "", "data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: barreldb delete --dir=DIR <key>")
	}

	db, err := openDB(fs)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete([]byte(rest[0])); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

func cmdScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.String("dir", "", "data directory")
	fs.String("prefix", "", "only keys with this prefix")
	fs.Bool("reverse", false, "walk in descending key order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openDB(fs)
	if err != nil {
		return err
	}
	defer db.Close()

	prefix, _ := fs.GetString("prefix")
	reverse, _ := fs.GetBool("reverse")

	cursor := db.Iter(options.IteratorConfig{Prefix: []byte(prefix), Reverse: reverse})
	count := 0
	for cursor.Next() {
		value, err := cursor.Value()
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", cursor.Key(), value)
		count++
	}
	fmt.Fprintf(os.Stderr, "%d key(s)\n", count)
	return nil
}
