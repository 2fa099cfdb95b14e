package testdata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// userColumns is the required CSV header, in order.
var userColumns = []string{
	"username", "password", "user_type", "expected_result", "description",
}

// LoadUsers reads login credential rows from a CSV file. The
// file must start with the header
// "username,password,user_type,expected_result,description";
// the description column may be empty.
func LoadUsers(path string) ([]UserCredentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataLoad, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", ErrDataLoad, path, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, path, err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDataLoad, path, err)
	}

	users := make([]UserCredentials, 0, len(records))
	for _, record := range records {
		users = append(users, UserCredentials{
			Username:       record[0],
			Password:       record[1],
			UserType:       record[2],
			ExpectedResult: record[3],
			Description:    record[4],
		})
	}
	return users, nil
}

func checkHeader(header []string) error {
	if len(header) != len(userColumns) {
		return fmt.Errorf("expected %d columns, got %d",
			len(userColumns), len(header))
	}
	for i, want := range userColumns {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		if got != want {
			return fmt.Errorf("column %d must be %q, got %q",
				i+1, want, header[i])
		}
	}
	return nil
}

// LoadScenario reads one shopping scenario from a JSON or YAML
// file, chosen by extension. YAML uses the same struct tags
// because gopkg.in/yaml.v3 honours json tags.
func LoadScenario(path string) (ShoppingScenario, error) {
	var scenario ShoppingScenario

	data, err := os.ReadFile(path)
	if err != nil {
		return scenario, fmt.Errorf("%w: read %s: %v", ErrDataLoad, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &scenario)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &scenario)
	default:
		return scenario, fmt.Errorf("%w: %s: unsupported extension",
			ErrDataLoad, path)
	}
	if err != nil {
		return scenario, fmt.Errorf("%w: parse %s: %v", ErrDataLoad, path, err)
	}
	return scenario, nil
}

// LoadScenariosFromDir loads every .json, .yaml and .yml
// scenario file from a directory, sorted by filename. It does
// not recurse into subdirectories.
func LoadScenariosFromDir(dir string) ([]ShoppingScenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %v", ErrDataLoad, dir, err)
	}

	var scenarios []ShoppingScenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		scenario, err := LoadScenario(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// scenarioLabel names a scenario in validation messages,
// falling back to its position for unnamed files.
func scenarioLabel(s ShoppingScenario, index int) string {
	if s.Name != "" {
		return s.Name
	}
	return "scenario " + strconv.Itoa(index)
}
