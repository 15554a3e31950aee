package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/corporate-website/deployctl/internal/config"
)

// confirmDeployment asks the operator to confirm a mutating deployment.
// Only "y" or "Y" proceeds; anything else, including an empty line or a
// closed input stream, declines.
func confirmDeployment(r io.Reader, w io.Writer, cfg config.Config) (bool, error) {
	fmt.Fprintf(w, "Deploy %s infrastructure to resource group %s in %s? [y/N]: ",
		cfg.Environment, cfg.ResourceGroup, cfg.Location)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y", nil
}
