package profile

import "github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"

func init() {
	register(purchaseOrders())
	register(execution())
	register(stock())
	register(pendingRequests())
	register(callAnnotations())
}

func purchaseOrders() Profile {
	p := newProfile(types.PurchaseOrders, "ordenes",
		[]Column{
			bigint("id_llamado"),
			text("llamado"),
			varchar("numero_oc", 50),
			integer("item"),
			varchar("codigo", 50),
			text("producto"),
			text("proveedor"),
			text("lugar_entrega"),
			numeric("cantidad_emitida"),
			numeric("cantidad_recepcionada"),
			numeric("saldo"),
			numeric("precio_unitario"),
			numeric("monto_emitido"),
			numeric("monto_recepcion"),
			numeric("monto_saldo"),
			date("fecha_contrato"),
			date("fecha_orden"),
			date("fecha_ultima_recepcion"),
			date("fecha_recepcion_proveedor"),
			integer("dias_atraso"),
			varchar("estado", 100),
			text("vigencia"),
			date("vigencia_contrato"),
			text("stock"),
			text("observaciones"),
			text("detalle_recepcion"),
		},
		labels("id_llamado", "Id.Llamado", "Id Llamado", "ID Llamado", "Nro. Llamado", "Número de Llamado"),
		labels("llamado", "Llamado", "Nombre Llamado", "Descripción Llamado"),
		labels("numero_oc", "OC", "Nro. OC", "N° OC", "Número OC", "Orden de Compra", "Nro Orden"),
		labels("item", "Item", "Ítem", "Nro. Item"),
		labels("codigo", "Código", "Cod. Producto", "Código Producto", "Código Catálogo"),
		labels("producto", "Producto", "Descripción Producto", "Medicamento"),
		labels("proveedor", "Proveedor", "Razón Social", "Empresa"),
		labels("lugar_entrega", "Lugar de Entrega", "Lugar Entrega", "Destino"),
		labels("cantidad_emitida", "Cantidad Emitida", "Cant. Emitida", "Cantidad OC"),
		labels("cantidad_recepcionada", "Cantidad Recepcionada", "Cant. Recepcionada", "Cantidad Recibida"),
		labels("saldo", "Saldo", "Saldo Cantidad"),
		labels("precio_unitario", "Precio Unitario", "P. Unitario", "Precio Unit."),
		labels("monto_emitido", "Monto Emitido", "Monto OC"),
		labels("monto_recepcion", "Monto Recepción", "Monto Recepcion", "Monto Recibido", "monto_recepci_n"),
		labels("monto_saldo", "Monto Saldo", "Saldo Monto"),
		labels("fecha_contrato", "Fecha Contrato", "Fecha de Contrato"),
		labels("fecha_orden", "Fecha Orden", "Fecha OC", "Fecha de Emisión", "Fecha Emisión"),
		labels("fecha_ultima_recepcion", "Fecha Última Recepción", "Ultima Recepción"),
		labels("fecha_recepcion_proveedor", "Fecha Recepción Proveedor", "Recepción Proveedor"),
		labels("dias_atraso", "Días de Atraso", "Dias Atraso", "Atraso"),
		labels("estado", "Estado", "Estado OC", "Situación"),
		labels("vigencia", "Vigencia", "Vigente"),
		labels("vigencia_contrato", "Vigencia Contrato", "Vigencia del Contrato", "Fin Contrato"),
		labels("stock", "Stock", "Stock Actual"),
		labels("observaciones", "Observaciones", "Observación", "Obs."),
		labels("detalle_recepcion", "Detalle Recepción", "Detalle de Recepción", "Recepciones"),
	)
	p.Indexes = []string{"codigo", "fecha_orden", "estado"}
	return p
}

func execution() Profile {
	p := newProfile(types.Execution, "ejecucion",
		[]Column{
			bigint("id_llamado"),
			text("licitacion"),
			text("proveedor"),
			integer("item"),
			varchar("codigo", 50),
			text("producto"),
			numeric("cantidad_maxima"),
			numeric("cantidad_emitida"),
			numeric("cantidad_recepcionada"),
			numeric("cantidad_distribuida"),
			numeric("monto_adjudicado"),
			numeric("monto_emitido"),
			numeric("saldo"),
			numeric("porcentaje_emitido"),
			varchar("estado_stock", 100),
			varchar("estado_contrato", 100),
			numeric("cantidad_ampliacion"),
			numeric("porcentaje_ampliado"),
			text("observaciones"),
		},
		labels("id_llamado", "Id.Llamado", "Id Llamado", "ID Llamado", "Nro. Llamado"),
		labels("licitacion", "Licitación", "Licitacion", "Llamado", "Modalidad"),
		labels("proveedor", "Proveedor", "Razón Social", "Empresa Adjudicada"),
		labels("item", "Item", "Ítem", "Lote/Item"),
		labels("codigo", "Código", "Cod. Producto", "Código Producto"),
		labels("producto", "Producto", "Descripción", "Medicamento"),
		labels("cantidad_maxima", "Cantidad Máxima", "Cantidad Maxima", "Cant. Máx. Adjudicada", "Cantidad Adjudicada"),
		labels("cantidad_emitida", "Cantidad Emitida", "Cant. Emitida"),
		labels("cantidad_recepcionada", "Cantidad Recepcionada", "Cant. Recepcionada"),
		labels("cantidad_distribuida", "Cantidad Distribuida", "Cant. Distribuida"),
		labels("monto_adjudicado", "Monto Adjudicado", "Monto Contrato"),
		labels("monto_emitido", "Monto Emitido"),
		labels("saldo", "Saldo", "Saldo Contrato"),
		labels("porcentaje_emitido", "% Emitido", "Porcentaje Emitido", "Porc. Emitido", "% Ejecutado"),
		labels("estado_stock", "Estado Stock", "Semáforo Stock"),
		labels("estado_contrato", "Estado Contrato", "Semáforo Contrato"),
		labels("cantidad_ampliacion", "Cantidad Ampliación", "Cant. Ampliación", "Ampliación"),
		labels("porcentaje_ampliado", "% Ampliado", "Porcentaje Ampliado"),
		labels("observaciones", "Observaciones", "Obs."),
	)
	p.Indexes = []string{"codigo", "item", "id_llamado"}
	return p
}

func stock() Profile {
	p := newProfile(types.Stock, "stock_critico",
		[]Column{
			varchar("codigo", 50),
			text("producto"),
			text("concentracion"),
			text("forma_farmaceutica"),
			text("presentacion"),
			varchar("clasificacion", 100),
			integer("meses_en_movimiento"),
			numeric("cantidad_distribuida"),
			numeric("stock_actual"),
			numeric("stock_reservado"),
			numeric("stock_disponible"),
			numeric("dmp"),
			varchar("estado", 100),
			numeric("stock_hospital"),
			text("oc"),
		},
		labels("codigo", "Código", "Cod. Producto", "Código Producto", "Código Catálogo"),
		labels("producto", "Producto", "Descripción", "Medicamento"),
		labels("concentracion", "Concentración", "Concentracion"),
		labels("forma_farmaceutica", "Forma Farmacéutica", "Forma Farmaceutica", "Forma"),
		labels("presentacion", "Presentación", "Presentacion"),
		labels("clasificacion", "Clasificación", "Clasificacion", "Categoría"),
		labels("meses_en_movimiento", "Meses en Movimiento", "Meses Movimiento", "Meses c/ Movimiento"),
		labels("cantidad_distribuida", "Cantidad Distribuida", "Distribuido", "Cant. Distribuida"),
		labels("stock_actual", "Stock Actual", "Existencia"),
		labels("stock_reservado", "Stock Reservado", "Reservado"),
		labels("stock_disponible", "Stock Disponible", "Disponible", "Saldo Disponible"),
		labels("dmp", "DMP", "D.M.P.", "Demanda Media Promedio", "Consumo Promedio Mensual"),
		labels("estado", "Estado", "Criticidad"),
		labels("stock_hospital", "Stock Hospital", "Stock Hospitales", "Stock en Servicios"),
		labels("oc", "OC", "Orden de Compra", "OC Vigente"),
	)
	p.Indexes = []string{"codigo", "dmp"}
	return p
}

func pendingRequests() Profile {
	p := newProfile(types.PendingRequests, "pedidos",
		[]Column{
			varchar("nro_pedido", 50),
			varchar("simese", 50),
			date("fecha_pedido"),
			varchar("codigo", 50),
			text("producto"),
			numeric("stock"),
			numeric("dmp"),
			numeric("cantidad"),
			numeric("meses_cobertura"),
			integer("dias_transcurridos"),
			varchar("estado", 100),
			varchar("prioridad", 50),
			varchar("nro_oc", 50),
			date("fecha_oc"),
			text("opciones"),
		},
		labels("nro_pedido", "Nro. Pedido", "N° Pedido", "Número de Pedido", "Pedido"),
		labels("simese", "SIMESE", "Nro. SIMESE", "Expediente"),
		labels("fecha_pedido", "Fecha Pedido", "Fecha del Pedido", "Fecha Solicitud"),
		labels("codigo", "Código", "Cod. Producto", "Código Producto"),
		labels("producto", "Producto", "Descripción", "Medicamento"),
		labels("stock", "Stock", "Stock Actual"),
		labels("dmp", "DMP", "D.M.P."),
		labels("cantidad", "Cantidad", "Cantidad Solicitada", "Cant. Pedida"),
		labels("meses_cobertura", "Meses de Cobertura", "Meses Cobertura", "Cobertura"),
		labels("dias_transcurridos", "Días Transcurridos", "Dias Transcurridos"),
		labels("estado", "Estado", "Situación"),
		labels("prioridad", "Prioridad", "Urgencia"),
		labels("nro_oc", "Nro. OC", "N° OC", "OC"),
		labels("fecha_oc", "Fecha OC", "Fecha Orden"),
		labels("opciones", "Opciones", "Comentarios"),
	)
	p.Indexes = []string{"codigo"}
	return p
}

func callAnnotations() Profile {
	p := newProfile(types.CallAnnotations, "datos_llamado",
		[]Column{
			bigint("id_llamado"),
			text("licitacion"),
			text("proveedor"),
			text("descripcion"),
			varchar("numero_contrato", 100),
			date("fecha_inicio"),
			date("fecha_fin"),
			text("destinatario"),
			text("lugares_entrega"),
		},
		labels("id_llamado", "Id.Llamado", "Id Llamado"),
		labels("licitacion", "Licitación"),
		labels("proveedor", "Proveedor"),
		labels("descripcion", "Descripción"),
		labels("numero_contrato", "Nro. Contrato", "Número de Contrato"),
		labels("fecha_inicio", "Fecha Inicio", "Inicio Vigencia"),
		labels("fecha_fin", "Fecha Fin", "Fin Vigencia"),
		labels("destinatario", "Destinatario"),
		labels("lugares_entrega", "Lugares de Entrega"),
	)
	p.Indexes = []string{"id_llamado"}
	p.Unique = "id_llamado"
	return p
}
