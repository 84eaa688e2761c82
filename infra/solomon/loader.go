// Package solomon parses VRPTW benchmark instances in the standard Solomon
// text format: an instance name, a VEHICLE section with fleet size and
// capacity, and a customer table whose first data row is the depot.
package solomon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/vrptw/core/model"
)

// Instance is a parsed Solomon VRPTW instance. Customers are renumbered to
// dense IDs 0..n-1 in file order so they can index the customer table
// directly; the depot keeps its own record and never appears in routes.
type Instance struct {
	Name      string
	Depot     model.Depot
	Customers []model.Customer
	Capacity  int
	FleetSize int
}

// Load reads and parses the instance at path. maxCustomers > 0 truncates the
// instance to its first maxCustomers customers.
func Load(path string, maxCustomers int) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name, maxCustomers)
}

// Parse parses an instance from r. See Load.
func Parse(r io.Reader, name string, maxCustomers int) (*Instance, error) {
	sc := bufio.NewScanner(r)

	capacity, fleet, err := readVehicleSection(sc)
	if err != nil {
		return nil, err
	}

	// Skip ahead to the customer table header.
	found := false
	for sc.Scan() {
		if strings.Contains(sc.Text(), "CUST") {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("solomon: customer section header not found")
	}

	inst := &Instance{Name: name, Capacity: capacity, FleetSize: fleet}
	haveDepot := false

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 7 {
			continue
		}
		c, err := parseCustomer(fields)
		if err != nil {
			continue
		}
		if !haveDepot {
			// First data row is the depot by convention.
			inst.Depot = c
			haveDepot = true
			continue
		}
		c.ID = len(inst.Customers)
		inst.Customers = append(inst.Customers, c)
		if maxCustomers > 0 && len(inst.Customers) >= maxCustomers {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	if !haveDepot {
		return nil, fmt.Errorf("solomon: no depot row found")
	}
	if inst.Capacity <= 0 {
		return nil, fmt.Errorf("solomon: vehicle capacity must be positive (got %d)", inst.Capacity)
	}
	return inst, nil
}

func readVehicleSection(sc *bufio.Scanner) (capacity, fleet int, err error) {
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "VEHICLE" {
			continue
		}
		// Header line, then the data row.
		if !sc.Scan() || !sc.Scan() {
			return 0, 0, fmt.Errorf("solomon: truncated VEHICLE section")
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return 0, 0, fmt.Errorf("solomon: malformed VEHICLE row %q", sc.Text())
		}
		fleet, err = strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, fmt.Errorf("solomon: fleet size: %w", err)
		}
		capacity, err = strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("solomon: capacity: %w", err)
		}
		return capacity, fleet, nil
	}
	return 0, 0, fmt.Errorf("solomon: VEHICLE section not found")
}

func parseCustomer(fields []string) (model.Customer, error) {
	var c model.Customer
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return c, err
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return c, err
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return c, err
	}
	demand, err := strconv.Atoi(fields[3])
	if err != nil {
		return c, err
	}
	ready, err := strconv.Atoi(fields[4])
	if err != nil {
		return c, err
	}
	due, err := strconv.Atoi(fields[5])
	if err != nil {
		return c, err
	}
	service, err := strconv.Atoi(fields[6])
	if err != nil {
		return c, err
	}
	return model.Customer{
		ID:          id,
		X:           x,
		Y:           y,
		Demand:      demand,
		ReadyTime:   ready,
		DueDate:     due,
		ServiceTime: service,
	}, nil
}
