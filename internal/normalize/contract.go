package normalize

import (
	"slices"
	"strings"
)

const UndefinedContract = "Vazio/Indefinido"

var contractGroups = []struct {
	markers []string
	group   string
}{
	{markers: []string{"CLT Full", "CLT Cotas"}, group: "CLT"},
	{markers: []string{"PJ/Autônomo"}, group: "PJ/Autônomo"},
	{markers: []string{"Cooperado"}, group: "Cooperado"},
	{markers: []string{"Estagiário"}, group: "Estágio"},
	{markers: []string{"Hunting"}, group: "Hunting"},
	{markers: []string{"Candidato poderá escolher"}, group: "Escolha do Candidato"},
}

// ContractCategory groups a free-text contract type into a sorted, comma-joined
// set of categories. Blank input is UndefinedContract; text with no known marker
// yields "".
func ContractCategory(contract string) string {
	if strings.TrimSpace(contract) == "" {
		return UndefinedContract
	}

	groups := make([]string, 0, len(contractGroups))
	for _, g := range contractGroups {
		for _, marker := range g.markers {
			if strings.Contains(contract, marker) {
				groups = append(groups, g.group)
				break
			}
		}
	}

	slices.Sort(groups)
	return strings.Join(slices.Compact(groups), ", ")
}
