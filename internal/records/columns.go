package records

// Destination columns of the flattened entities and the nested source
// section each one is read from. Order is the table column order.

const (
	ApplicantIDColumn      = "id_applicants"
	ApplicantCodeColumn    = "infos_basicas_codigo_profissional"
	ApplicantCompensation  = "remuneracao"
	JobIDColumn            = "id_vaga"
	JobTitleColumn         = "titulo_vaga"
	JobContractColumn      = "tipo_contratacao"
	JobContractGroupColumn = "categoria_contratacao"
	JobSaleValueColumn     = "valor_venda"
	ProspectJobColumn      = "vaga_id"
	ProspectCodeColumn     = "codigo"
	ProspectOutcomeColumn  = "situacao_candidado"
	ProspectFanOutColumn   = "quantidade_prospects"
	ProspectJobTitleColumn = "titulo"
	ProspectModalityColumn = "modalidade"
)

type field struct {
	source string
	column string
}

type section struct {
	key    string
	fields []field
}

func same(names ...string) []field {
	fields := make([]field, 0, len(names))
	for _, name := range names {
		fields = append(fields, field{source: name, column: name})
	}
	return fields
}

var applicantSections = []section{
	{
		key: "infos_basicas",
		fields: []field{
			{"telefone_recado", "telefone_recado"},
			{"telefone", "telefone"},
			{"objetivo_profissional", "infos_basicas_objetivo_profissional"},
			{"data_criacao", "infos_basicas_data_criacao"},
			{"inserido_por", "infos_basicas_inserido_por"},
			{"email", "infos_basicas_email"},
			{"local", "infos_basicas_local"},
			{"sabendo_de_nos_por", "infos_basicas_sabendo_de_nos_por"},
			{"data_atualizacao", "infos_basicas_data_atualizacao"},
			{"codigo_profissional", "infos_basicas_codigo_profissional"},
			{"nome", "infos_basicas_nome"},
		},
	},
	{
		// telefone_recado also lives here; this section wins.
		key: "informacoes_pessoais",
		fields: same(
			"data_aceite", "nome", "cpf", "fonte_indicacao", "email", "email_secundario",
			"data_nascimento", "telefone_celular", "telefone_recado", "sexo", "estado_civil",
			"pcd", "endereco", "skype", "url_linkedin", "facebook",
		),
	},
	{
		key: "informacoes_profissionais",
		fields: same(
			"titulo_profissional", "area_atuacao", "conhecimentos_tecnicos", "certificacoes",
			"outras_certificacoes", "remuneracao", "nivel_profissional",
		),
	},
	{
		key: "formacao_e_idiomas",
		fields: same(
			"nivel_academico", "nivel_ingles", "nivel_espanhol", "outro_idioma",
			"instituicao_ensino_superior", "cursos", "ano_conclusao", "download_cv",
			"qualificacoes", "experiencias", "outro_curso",
		),
	},
	{
		key: "cargo_atual",
		fields: same(
			"id_ibrati", "email_corporativo", "cargo_atual", "projeto_atual", "cliente",
			"unidade", "data_admissao", "data_ultima_promocao", "nome_superior_imediato",
			"email_superior_imediato",
		),
	},
}

// Top-level free-text CV fields of an applicant.
var applicantTopLevel = []string{"cv_pt", "cv_en"}

var jobSections = []section{
	{
		key: "informacoes_basicas",
		fields: same(
			"data_requicisao", "limite_esperado_para_contratacao", "titulo_vaga", "vaga_sap",
			"cliente", "solicitante_cliente", "empresa_divisao", "requisitante",
			"analista_responsavel", "tipo_contratacao", "prazo_contratacao", "objetivo_vaga",
			"prioridade_vaga", "origem_vaga", "superior_imediato",
		),
	},
	{
		key: "perfil_vaga",
		fields: same(
			"nome", "telefone", "pais", "estado", "cidade", "bairro", "regiao", "local_trabalho",
			"vaga_especifica_para_pcd", "faixa_etaria", "horario_trabalho", "nivel profissional",
			"nivel_academico", "nivel_ingles", "nivel_espanhol", "outro_idioma", "areas_atuacao",
			"principais_atividades", "competencia_tecnicas_e_comportamentais",
			"demais_observacoes", "viagens_requeridas", "equipamentos_necessarios",
		),
	},
	{
		key: "beneficios",
		fields: same(
			"valor_venda", "valor_compra_1", "valor_compra_2", "data_inicial", "data_final",
			"habilidades_comportamentais_necessarias", "nome_substituto",
		),
	},
}

// Per-application fields listed under a job's "prospects" array.
var prospectFields = []string{
	"nome", "codigo", "situacao_candidado", "data_candidatura", "ultima_atualizacao",
	"comentario", "recrutador",
}

// ApplicantColumns returns the flattened applicant column set in table order.
func ApplicantColumns() []string {
	cols := []string{ApplicantIDColumn}
	cols = appendSectionColumns(cols, applicantSections)
	return append(cols, applicantTopLevel...)
}

// JobColumns returns the flattened job column set in table order.
func JobColumns() []string {
	cols := []string{JobIDColumn}
	return appendSectionColumns(cols, jobSections)
}

// ProspectColumns returns the flattened prospect column set in table order.
func ProspectColumns() []string {
	cols := []string{ProspectJobColumn, ProspectJobTitleColumn, ProspectModalityColumn, ProspectFanOutColumn}
	return append(cols, prospectFields...)
}

// JobInputColumns is the exact key set a single-job prediction request must carry:
// the raw job columns plus the grouped contract category.
func JobInputColumns() []string {
	return append(JobColumns(), JobContractGroupColumn)
}

func appendSectionColumns(cols []string, sections []section) []string {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		seen[c] = struct{}{}
	}
	for _, s := range sections {
		for _, f := range s.fields {
			if _, ok := seen[f.column]; ok {
				continue
			}
			seen[f.column] = struct{}{}
			cols = append(cols, f.column)
		}
	}
	return cols
}
