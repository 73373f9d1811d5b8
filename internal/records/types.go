package records

import "time"

type Applicant struct {
	IDApplicants string `mapstructure:"id_applicants" json:"id_applicants"`

	TelefoneRecado               string     `mapstructure:"telefone_recado" json:"telefone_recado"`
	Telefone                     string     `mapstructure:"telefone" json:"telefone"`
	ObjetivoProfissional         string     `mapstructure:"infos_basicas_objetivo_profissional" json:"infos_basicas_objetivo_profissional"`
	DataCriacao                  *time.Time `mapstructure:"infos_basicas_data_criacao" json:"infos_basicas_data_criacao"`
	InseridoPor                  string     `mapstructure:"infos_basicas_inserido_por" json:"infos_basicas_inserido_por"`
	InfosBasicasEmail            string     `mapstructure:"infos_basicas_email" json:"infos_basicas_email"`
	Local                        string     `mapstructure:"infos_basicas_local" json:"infos_basicas_local"`
	SabendoDeNosPor              string     `mapstructure:"infos_basicas_sabendo_de_nos_por" json:"infos_basicas_sabendo_de_nos_por"`
	DataAtualizacao              *time.Time `mapstructure:"infos_basicas_data_atualizacao" json:"infos_basicas_data_atualizacao"`
	CodigoProfissional           int64      `mapstructure:"infos_basicas_codigo_profissional" json:"infos_basicas_codigo_profissional"`
	InfosBasicasNome             string     `mapstructure:"infos_basicas_nome" json:"infos_basicas_nome"`

	DataAceite      string     `mapstructure:"data_aceite" json:"data_aceite"`
	Nome            string     `mapstructure:"nome" json:"nome"`
	CPF             string     `mapstructure:"cpf" json:"cpf"`
	FonteIndicacao  string     `mapstructure:"fonte_indicacao" json:"fonte_indicacao"`
	Email           string     `mapstructure:"email" json:"email"`
	EmailSecundario string     `mapstructure:"email_secundario" json:"email_secundario"`
	DataNascimento  *time.Time `mapstructure:"data_nascimento" json:"data_nascimento"`
	TelefoneCelular string     `mapstructure:"telefone_celular" json:"telefone_celular"`
	Sexo            string     `mapstructure:"sexo" json:"sexo"`
	EstadoCivil     string     `mapstructure:"estado_civil" json:"estado_civil"`
	PCD             string     `mapstructure:"pcd" json:"pcd"`
	Endereco        string     `mapstructure:"endereco" json:"endereco"`
	Skype           string     `mapstructure:"skype" json:"skype"`
	URLLinkedin     string     `mapstructure:"url_linkedin" json:"url_linkedin"`
	Facebook        string     `mapstructure:"facebook" json:"facebook"`

	TituloProfissional    string  `mapstructure:"titulo_profissional" json:"titulo_profissional"`
	AreaAtuacao           string  `mapstructure:"area_atuacao" json:"area_atuacao"`
	ConhecimentosTecnicos string  `mapstructure:"conhecimentos_tecnicos" json:"conhecimentos_tecnicos"`
	Certificacoes         string  `mapstructure:"certificacoes" json:"certificacoes"`
	OutrasCertificacoes   string  `mapstructure:"outras_certificacoes" json:"outras_certificacoes"`
	Remuneracao           float64 `mapstructure:"remuneracao" json:"remuneracao"`
	NivelProfissional     string  `mapstructure:"nivel_profissional" json:"nivel_profissional"`

	NivelAcademico            string `mapstructure:"nivel_academico" json:"nivel_academico"`
	NivelIngles               string `mapstructure:"nivel_ingles" json:"nivel_ingles"`
	NivelEspanhol             string `mapstructure:"nivel_espanhol" json:"nivel_espanhol"`
	OutroIdioma               string `mapstructure:"outro_idioma" json:"outro_idioma"`
	InstituicaoEnsinoSuperior string `mapstructure:"instituicao_ensino_superior" json:"instituicao_ensino_superior"`
	Cursos                    string `mapstructure:"cursos" json:"cursos"`
	AnoConclusao              string `mapstructure:"ano_conclusao" json:"ano_conclusao"`
	DownloadCV                string `mapstructure:"download_cv" json:"download_cv"`
	Qualificacoes             string `mapstructure:"qualificacoes" json:"qualificacoes"`
	Experiencias              string `mapstructure:"experiencias" json:"experiencias"`
	OutroCurso                string `mapstructure:"outro_curso" json:"outro_curso"`

	IDIbrati              int64      `mapstructure:"id_ibrati" json:"id_ibrati"`
	EmailCorporativo      string     `mapstructure:"email_corporativo" json:"email_corporativo"`
	CargoAtual            string     `mapstructure:"cargo_atual" json:"cargo_atual"`
	ProjetoAtual          string     `mapstructure:"projeto_atual" json:"projeto_atual"`
	Cliente               string     `mapstructure:"cliente" json:"cliente"`
	Unidade               string     `mapstructure:"unidade" json:"unidade"`
	DataAdmissao          *time.Time `mapstructure:"data_admissao" json:"data_admissao"`
	DataUltimaPromocao    *time.Time `mapstructure:"data_ultima_promocao" json:"data_ultima_promocao"`
	NomeSuperiorImediato  string     `mapstructure:"nome_superior_imediato" json:"nome_superior_imediato"`
	EmailSuperiorImediato string     `mapstructure:"email_superior_imediato" json:"email_superior_imediato"`

	CVPT string `mapstructure:"cv_pt" json:"cv_pt"`
	CVEN string `mapstructure:"cv_en" json:"cv_en"`
}

type Job struct {
	IDVaga string `mapstructure:"id_vaga" json:"id_vaga"`

	DataRequisicao                *time.Time `mapstructure:"data_requicisao" json:"data_requicisao"`
	LimiteEsperadoParaContratacao *time.Time `mapstructure:"limite_esperado_para_contratacao" json:"limite_esperado_para_contratacao"`
	TituloVaga                    string     `mapstructure:"titulo_vaga" json:"titulo_vaga"`
	VagaSAP                       string     `mapstructure:"vaga_sap" json:"vaga_sap"`
	Cliente                       string     `mapstructure:"cliente" json:"cliente"`
	SolicitanteCliente            string     `mapstructure:"solicitante_cliente" json:"solicitante_cliente"`
	EmpresaDivisao                string     `mapstructure:"empresa_divisao" json:"empresa_divisao"`
	Requisitante                  string     `mapstructure:"requisitante" json:"requisitante"`
	AnalistaResponsavel           string     `mapstructure:"analista_responsavel" json:"analista_responsavel"`
	TipoContratacao               string     `mapstructure:"tipo_contratacao" json:"tipo_contratacao"`
	CategoriaContratacao          string     `mapstructure:"categoria_contratacao" json:"categoria_contratacao"`
	PrazoContratacao              string     `mapstructure:"prazo_contratacao" json:"prazo_contratacao"`
	ObjetivoVaga                  string     `mapstructure:"objetivo_vaga" json:"objetivo_vaga"`
	PrioridadeVaga                string     `mapstructure:"prioridade_vaga" json:"prioridade_vaga"`
	OrigemVaga                    string     `mapstructure:"origem_vaga" json:"origem_vaga"`
	SuperiorImediato              string     `mapstructure:"superior_imediato" json:"superior_imediato"`

	Nome                                string `mapstructure:"nome" json:"nome"`
	Telefone                            string `mapstructure:"telefone" json:"telefone"`
	Pais                                string `mapstructure:"pais" json:"pais"`
	Estado                              string `mapstructure:"estado" json:"estado"`
	Cidade                              string `mapstructure:"cidade" json:"cidade"`
	Bairro                              string `mapstructure:"bairro" json:"bairro"`
	Regiao                              string `mapstructure:"regiao" json:"regiao"`
	LocalTrabalho                       string `mapstructure:"local_trabalho" json:"local_trabalho"`
	VagaEspecificaParaPCD               string `mapstructure:"vaga_especifica_para_pcd" json:"vaga_especifica_para_pcd"`
	FaixaEtaria                         string `mapstructure:"faixa_etaria" json:"faixa_etaria"`
	HorarioTrabalho                     string `mapstructure:"horario_trabalho" json:"horario_trabalho"`
	NivelProfissional                   string `mapstructure:"nivel profissional" json:"nivel_profissional"`
	NivelAcademico                      string `mapstructure:"nivel_academico" json:"nivel_academico"`
	NivelIngles                         string `mapstructure:"nivel_ingles" json:"nivel_ingles"`
	NivelEspanhol                       string `mapstructure:"nivel_espanhol" json:"nivel_espanhol"`
	OutroIdioma                         string `mapstructure:"outro_idioma" json:"outro_idioma"`
	AreasAtuacao                        string `mapstructure:"areas_atuacao" json:"areas_atuacao"`
	PrincipaisAtividades                string `mapstructure:"principais_atividades" json:"principais_atividades"`
	CompetenciaTecnicasEComportamentais string `mapstructure:"competencia_tecnicas_e_comportamentais" json:"competencia_tecnicas_e_comportamentais"`
	DemaisObservacoes                   string `mapstructure:"demais_observacoes" json:"demais_observacoes"`
	ViagensRequeridas                   string `mapstructure:"viagens_requeridas" json:"viagens_requeridas"`
	EquipamentosNecessarios             string `mapstructure:"equipamentos_necessarios" json:"equipamentos_necessarios"`

	ValorVenda                            float64    `mapstructure:"valor_venda" json:"valor_venda"`
	ValorCompra1                          string     `mapstructure:"valor_compra_1" json:"valor_compra_1"`
	ValorCompra2                          string     `mapstructure:"valor_compra_2" json:"valor_compra_2"`
	DataInicial                           *time.Time `mapstructure:"data_inicial" json:"data_inicial"`
	DataFinal                             *time.Time `mapstructure:"data_final" json:"data_final"`
	HabilidadesComportamentaisNecessarias string     `mapstructure:"habilidades_comportamentais_necessarias" json:"habilidades_comportamentais_necessarias"`
	NomeSubstituto                        string     `mapstructure:"nome_substituto" json:"nome_substituto"`
}

type Prospect struct {
	VagaID              string     `mapstructure:"vaga_id" json:"vaga_id"`
	Titulo              string     `mapstructure:"titulo" json:"titulo"`
	Modalidade          string     `mapstructure:"modalidade" json:"modalidade"`
	QuantidadeProspects int64      `mapstructure:"quantidade_prospects" json:"quantidade_prospects"`
	Nome                string     `mapstructure:"nome" json:"nome"`
	Codigo              int64      `mapstructure:"codigo" json:"codigo"`
	SituacaoCandidado   string     `mapstructure:"situacao_candidado" json:"situacao_candidado"`
	DataCandidatura     *time.Time `mapstructure:"data_candidatura" json:"data_candidatura"`
	UltimaAtualizacao   *time.Time `mapstructure:"ultima_atualizacao" json:"ultima_atualizacao"`
	Comentario          string     `mapstructure:"comentario" json:"comentario"`
	Recrutador          string     `mapstructure:"recrutador" json:"recrutador"`
}
