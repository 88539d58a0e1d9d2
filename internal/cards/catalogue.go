package cards

import (
	"fmt"
	"strings"
)

// BlankMarker is the token inside a prompt that one answer card fills.
const BlankMarker = "______"

// Catalogue is the static card content loaded once at process start.
type Catalogue struct {
	Prompts []string
	Answers []string
}

// Validate checks that every prompt has exactly one blank and that no card repeats.
func (c Catalogue) Validate() error {
	if len(c.Prompts) == 0 || len(c.Answers) == 0 {
		return fmt.Errorf("catalogue is empty")
	}

	seen := make(map[string]bool, len(c.Prompts))
	for _, p := range c.Prompts {
		if n := strings.Count(p, BlankMarker); n != 1 {
			return fmt.Errorf("prompt %q has %d blanks, want 1", p, n)
		}
		if seen[p] {
			return fmt.Errorf("duplicate prompt %q", p)
		}
		seen[p] = true
	}

	seen = make(map[string]bool, len(c.Answers))
	for _, a := range c.Answers {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("empty answer card")
		}
		if seen[a] {
			return fmt.Errorf("duplicate answer %q", a)
		}
		seen[a] = true
	}
	return nil
}

// Fill renders a prompt with the answer in place of the blank.
func Fill(prompt, answer string) string {
	return strings.Replace(prompt, BlankMarker, answer, 1)
}

// DefaultCatalogue returns the built-in deck.
func DefaultCatalogue() Catalogue {
	return Catalogue{
		Prompts: append([]string(nil), defaultPrompts...),
		Answers: append([]string(nil), defaultAnswers...),
	}
}

var defaultPrompts = []string{
	// Confissões
	"Gosto de ______",
	"Meu maior segredo é ______",
	"Nunca conte para a minha mãe sobre ______",
	"O que me fez chorar ontem foi ______",
	"Meu plano para ficar rico envolve ______",
	"Eu perdi meu emprego por causa de ______",
	"Meu terapeuta não aguenta mais ouvir sobre ______",
	"No meu testamento vou deixar ______",
	"A primeira coisa que faço ao acordar é ______",
	"Meu talento secreto é ______",

	// Situações
	"O casamento foi cancelado por causa de ______",
	"A reunião de condomínio terminou em briga por causa de ______",
	"O churrasco de domingo ficou famoso por ______",
	"A polícia chegou e encontrou ______",
	"O grupo da família explodiu quando alguém mandou ______",
	"A próxima novela das nove vai ser sobre ______",
	"O novo reality show coloca dez pessoas trancadas com ______",
	"O médico olhou o raio-x e disse: isso é ______",
	"O segredo da receita da vovó é ______",
	"A viagem de formatura foi marcada por ______",

	// Opiniões
	"O Brasil seria um país melhor com mais ______",
	"Nada estraga um primeiro encontro como ______",
	"O melhor presente de amigo secreto é ______",
	"A pior coisa para encontrar no bolso é ______",
	"Ninguém deveria sair de casa sem ______",
	"A aula de educação física seria melhor com ______",
	"O que realmente move a economia é ______",
	"Todo mundo finge que não gosta de ______",
	"A cura para a ressaca é ______",
	"O próximo esporte olímpico deveria ser ______",

	// Noticiário
	"Cientistas descobrem que o universo é feito de ______",
	"Prefeitura anuncia feriado em homenagem a ______",
	"Pesquisa revela que 9 em cada 10 dentistas recomendam ______",
	"Influenciador é cancelado após postar ______",
	"Museu inaugura exposição dedicada a ______",
	"Aplicativo de namoro agora combina pessoas por ______",
	"Estudo comprova que o estresse é causado por ______",
	"O novo sabor de sorvete é ______",
	"A vizinha reclamou do barulho de ______",
	"O último desejo do pirata foi ______",
}

var defaultAnswers = []string{
	// Pessoas e bichos
	"minha ex", "o tio do pavê", "a sogra", "um pombo com fome", "o síndico",
	"um coach quântico", "a tia do zap", "um palhaço triste", "o cachorro do vizinho", "um gato sem rabo",
	"o estagiário", "um vampiro vegano", "o primo rico", "a cigana do centro", "um anão de jardim",
	"o padre da paróquia", "um hamster motivado", "a professora de química", "um bebê reborn", "o cara da academia",
	"um jacaré de estimação", "o motoboy", "a fada do dente", "um fantasma carente", "o influenciador fitness",

	// Objetos
	"um pote de sorvete com feijão", "uma calcinha bege", "um boleto vencido", "uma dentadura usada", "um controle remoto sem pilha",
	"uma peruca loira", "um pé de meia furado", "uma faca de serra", "um disco do Roberto Carlos", "uma pochete",
	"um cortador de unha", "uma vela aromática", "um carrinho de supermercado", "um bambolê", "um guarda-chuva quebrado",
	"um rolo de papel higiênico", "uma planilha de gastos", "um pendrive misterioso", "uma coxinha fria", "um pacote de miojo",
	"um chinelo de dedo", "uma panela de pressão", "um cofrinho de porquinho", "uma fita cassete", "um tamagotchi morto",

	// Ações
	"dançar forró pelado", "chorar no banho", "mandar áudio de dez minutos", "roubar o wi-fi do vizinho", "comer pizza com ketchup",
	"stalkear o ex", "cantar sertanejo no karaokê", "esquecer o aniversário da mãe", "fingir que está trabalhando", "dormir na reunião",
	"pedir desconto no velório", "fazer pix errado", "arrotar o hino nacional", "colar chiclete embaixo da mesa", "abrir a geladeira de madrugada",
	"responder com kkkk", "apostar no bicho", "usar meia com sandália", "tirar selfie no enterro", "falar com as plantas",
	"lamber o dedo para virar a página", "cortar o cabelo sozinho", "levar marmita para a balada", "mentir a idade", "espirrar na salada",

	// Situações e conceitos
	"uma crise existencial", "a terceira guerra mundial", "o horário de verão", "um pum silencioso", "uma dívida no cartão",
	"a segunda-feira", "o boleto da faculdade", "um relacionamento aberto", "o aquecimento global", "um pagode às seis da manhã",
	"a fila do banco", "um grupo de oração", "uma pirâmide financeira", "o final de Lost", "a inflação",
	"uma dieta da lua", "o bafo matinal", "uma reunião que podia ser um email", "um teste de gravidez", "o spoiler da série",
	"um chulé poderoso", "a conta de luz", "uma festa à fantasia", "a síndrome do impostor", "um tombo na escada rolante",

	// Comidas
	"feijoada requentada", "pão de queijo murcho", "caldo de cana", "salgadinho de isopor", "uva-passa no arroz",
	"jiló frito", "um litro de cachaça", "pastel de vento", "brigadeiro de colher", "sushi de posto",
	"coxinha de jaca", "açaí com farofa", "refrigerante sem gás", "torresmo", "mortadela no pão francês",
	"pudim de leite", "quentão de festa junina", "bala de menta vencida", "churrasco de gato", "macarrão instantâneo cru",

	// Lugares
	"o banheiro da rodoviária", "a casa da vó", "um motel de beira de estrada", "a fila do SUS", "o shopping na véspera de natal",
	"uma igreja evangélica", "o grupo da firma", "a praia lotada", "uma van escolar", "o baile funk",
	"a academia às seis da manhã", "um cruzeiro temático", "o porão da escola", "uma lan house", "o camarote VIP",

	// Extras
	"um ex-BBB", "um unicórnio de pelúcia", "a Xuxa", "um disco voador", "a polícia federal",
	"um telemarketing insistente", "um robô aspirador", "a Inteligência Artificial", "um astrólogo", "uma sessão espírita",
	"a carteira de trabalho", "um casamento no cartório", "um abraço constrangedor", "o boné do Neymar", "uma cueca da sorte",
	"um beijo técnico", "o colchão da república", "um ventilador barulhento", "o dicionário Aurélio", "uma novela mexicana",
}
